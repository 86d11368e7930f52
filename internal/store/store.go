// Package store is the persistence adapter: one serialized record list
// under one key of a Slot backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Makepad-fr/records/internal/logging"
	"github.com/Makepad-fr/records/internal/model"
)

// DefaultKey is the storage key the list lives under.
const DefaultKey = "records"

// Slot is a key-value backend holding opaque values.
type Slot interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Records reads and writes the record list stored under Key.
type Records struct {
	Slot Slot
	Key  string
	Log  *zap.Logger
}

// NewRecords returns an adapter for key in slot. An empty key means DefaultKey.
func NewRecords(slot Slot, key string) *Records {
	if key == "" {
		key = DefaultKey
	}
	return &Records{Slot: slot, Key: key, Log: logging.Named("store")}
}

func (r *Records) log() *zap.Logger {
	if r.Log == nil {
		return logging.Named("store")
	}
	return r.Log
}

// Load returns the stored list. Nothing stored, a failed read and a value
// that does not validate all yield an empty list.
func (r *Records) Load(ctx context.Context) []model.Record {
	b, ok, err := r.Slot.Get(ctx, r.Key)
	if err != nil {
		r.log().Warn("read failed, starting with an empty list", zap.String("key", r.Key), zap.Error(err))
		return []model.Record{}
	}
	if !ok {
		return []model.Record{}
	}
	records, err := Decode(b)
	if err != nil {
		r.log().Warn("stored value is malformed, starting with an empty list", zap.String("key", r.Key), zap.Error(err))
		return []model.Record{}
	}
	r.log().Debug("loaded", zap.String("key", r.Key), zap.Int("count", len(records)))
	return records
}

// Save serializes records and overwrites the stored value.
func (r *Records) Save(ctx context.Context, records []model.Record) error {
	b, err := Encode(records)
	if err != nil {
		return err
	}
	if err := r.Slot.Put(ctx, r.Key, b); err != nil {
		return fmt.Errorf("write %q: %w", r.Key, err)
	}
	r.log().Debug("saved", zap.String("key", r.Key), zap.Int("count", len(records)))
	return nil
}

// Close releases the underlying slot.
func (r *Records) Close() error { return r.Slot.Close() }

// Encode renders records as a JSON array. A nil list encodes as [].
func Encode(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// ErrMalformed is returned by Decode when the value is not a valid record list.
var ErrMalformed = errors.New("malformed record list")

// wireRecord uses pointers so missing fields can be told apart from zero values.
type wireRecord struct {
	ID         *string `json:"id"`
	Text       *string `json:"text"`
	IsComplete *bool   `json:"isComplete"`
}

// Decode validates and parses a stored value: a JSON array of objects with
// string id, string text and boolean isComplete. Ids must be non-empty and
// unique. Unknown fields are ignored.
func Decode(b []byte) ([]model.Record, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out := make([]model.Record, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		var w wireRecord
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		switch {
		case w.ID == nil:
			return nil, fmt.Errorf("%w: element %d: missing id", ErrMalformed, i)
		case w.Text == nil:
			return nil, fmt.Errorf("%w: element %d: missing text", ErrMalformed, i)
		case w.IsComplete == nil:
			return nil, fmt.Errorf("%w: element %d: missing isComplete", ErrMalformed, i)
		case *w.ID == "":
			return nil, fmt.Errorf("%w: element %d: empty id", ErrMalformed, i)
		}
		if _, dup := seen[*w.ID]; dup {
			return nil, fmt.Errorf("%w: element %d: duplicate id %q", ErrMalformed, i, *w.ID)
		}
		seen[*w.ID] = struct{}{}
		out = append(out, model.Record{ID: *w.ID, Text: *w.Text, IsComplete: *w.IsComplete})
	}
	return out, nil
}

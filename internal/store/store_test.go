package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/records/internal/model"
)

// memSlot is an in-memory Slot.
type memSlot struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newMemSlot() *memSlot { return &memSlot{data: map[string][]byte{}} }

func (m *memSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memSlot) Put(_ context.Context, key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memSlot) Close() error { return nil }

func sample() []model.Record {
	return []model.Record{
		{ID: "a1", Text: "buy milk", IsComplete: false},
		{ID: "b2", Text: "call mom", IsComplete: true},
		{ID: "c3", Text: "ship it", IsComplete: false},
	}
}

func TestRecords_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendFile, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			r, err := Open(ctx, backend, t.TempDir(), "")
			require.NoError(t, err)
			defer r.Close()

			require.NoError(t, r.Save(ctx, sample()))
			assert.Equal(t, sample(), r.Load(ctx))
		})
	}
}

func TestRecords_LoadEmptyWhenNothingStored(t *testing.T) {
	r := NewRecords(newMemSlot(), "")
	got := r.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, DefaultKey, r.Key)
}

func TestRecords_LoadEmptyOnReadError(t *testing.T) {
	slot := newMemSlot()
	slot.getErr = errors.New("disk on fire")
	assert.Empty(t, NewRecords(slot, "k").Load(context.Background()))
}

func TestRecords_SaveWrapsSlotError(t *testing.T) {
	slot := newMemSlot()
	slot.putErr = errors.New("read-only")
	err := NewRecords(slot, "k").Save(context.Background(), sample())
	require.Error(t, err)
	assert.ErrorIs(t, err, slot.putErr)
}

func TestRecords_SaveNilWritesEmptyArray(t *testing.T) {
	slot := newMemSlot()
	require.NoError(t, NewRecords(slot, "k").Save(context.Background(), nil))
	assert.Equal(t, "[]", string(slot.data["k"]))
}

func TestRecords_LoadMalformedYieldsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{{`,
		"object":          `{"id":"a"}`,
		"number element":  `[1]`,
		"null element":    `[null]`,
		"missing id":      `[{"text":"x","isComplete":false}]`,
		"missing text":    `[{"id":"a","isComplete":false}]`,
		"missing flag":    `[{"id":"a","text":"x"}]`,
		"numeric id":      `[{"id":5,"text":"x","isComplete":false}]`,
		"string flag":     `[{"id":"a","text":"x","isComplete":"yes"}]`,
		"empty id":        `[{"id":"","text":"x","isComplete":false}]`,
		"duplicate ids":   `[{"id":"a","text":"x","isComplete":false},{"id":"a","text":"y","isComplete":true}]`,
		"partially valid": `[{"id":"a","text":"x","isComplete":false},{"id":"b"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			slot := newMemSlot()
			slot.data["records"] = []byte(raw)
			assert.Empty(t, NewRecords(slot, "records").Load(context.Background()))

			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"a","text":"x","isEditing":true,"isComplete":true}]`))
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{ID: "a", Text: "x", IsComplete: true}}, got)
}

func TestDecode_NullIsEmpty(t *testing.T) {
	got, err := Decode([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenSlot_UnknownBackend(t *testing.T) {
	_, err := OpenSlot(context.Background(), "mysql", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

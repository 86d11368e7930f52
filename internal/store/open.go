package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/records/internal/store/filestore"
	"github.com/Makepad-fr/records/internal/store/sqlitestore"
)

// ErrUnknownBackend is returned by OpenSlot for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// OpenSlot opens the named backend rooted at dir.
func OpenSlot(ctx context.Context, backend, dir string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		s, err := filestore.New(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := sqlitestore.Open(ctx, dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Open opens backend at dir and returns an adapter for key.
func Open(ctx context.Context, backend, dir, key string) (*Records, error) {
	slot, err := OpenSlot(ctx, backend, dir)
	if err != nil {
		return nil, err
	}
	return NewRecords(slot, key), nil
}

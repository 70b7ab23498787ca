// Package credentials persists the single bearer credential the client uses
// to talk to the API. The value survives process restarts; nothing here
// tracks expiry, the server is the only judge of validity.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// Store holds at most one credential.
//
// Get returns ("", false, nil) when nothing is stored. Clear on an empty
// store is not an error.
type Store interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}

// Kind names a Store backend.
type Kind string

const (
	KindSQLite  Kind = "sqlite"
	KindKeyring Kind = "keyring"
)

// entryName is the single named entry the credential lives under, in every
// backend.
const entryName = "access_token"

var ErrUnknownKind = errors.New("unknown credential store")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store selected by kind. SQLite data lives in dataDir.
// The returned closer must be called on shutdown.
func Open(ctx context.Context, kind Kind, dataDir string) (Store, io.Closer, error) {
	switch kind {
	case KindSQLite, "":
		db, err := InitDatabase(ctx, filepath.Join(dataDir, "client.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("init database: %w", err)
		}
		return NewSQLiteStore(db), db, nil
	case KindKeyring:
		s := NewKeyringStore(DefaultKeyringService)
		if err := s.Probe(); err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

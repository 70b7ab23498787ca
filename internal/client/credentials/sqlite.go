package credentials

import (
	"context"

	"github.com/dmitrijs2005/healthplanner/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/healthplanner/internal/dbx"
)

// SQLiteStore keeps the credential as one row of the local metadata table.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, entryName)
	if err != nil || !ok || v == "" {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, credential string) error {
	return s.repo.Set(ctx, entryName, credential)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, entryName)
}

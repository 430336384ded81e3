package readstore

import (
	"context"
	"errors"

	"agency-notify/internal/infra"
	"agency-notify/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const displayNameSQL = `SELECT display_name FROM users WHERE id = $1`

// UserReadStore exposes the single author field the notification surface is
// allowed to see. The users table belongs to the CRUD collaborators.
type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{db: pool}
}

func (s *UserReadStore) DisplayName(ctx context.Context, authorID uuid.UUID) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, displayNameSQL, authorID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("author not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to get author display name", err)
	}
	return name, nil
}

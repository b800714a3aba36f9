package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

type SessionRepo struct {
	db db.DB
}

func NewSessionRepo(db db.DB) storage.SessionRepository {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, session *repository.Session) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO sessions (token, user_id, role, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, session.Token, session.UserID, session.Role, session.ExpiresAt, session.CreatedAt)
	return err
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*repository.Session, error) {
	var session repository.Session
	err := r.db.Get(ctx, &session, "SELECT * FROM sessions WHERE token = $1", token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now()")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

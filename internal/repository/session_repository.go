package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/social-service/internal/domain"
)

// SessionRepository manages issued-session persistence. Only token digests
// are stored; lookups are by digest.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByDigest(ctx context.Context, digest string) (*domain.Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (user_id, digest, issued_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		session.UserID,
		session.Digest,
		session.IssuedAt,
		session.ExpiresAt,
	).Scan(&session.ID)
}

func (r *sessionRepository) GetByDigest(ctx context.Context, digest string) (*domain.Session, error) {
	const query = `
        SELECT id, user_id, digest, issued_at, expires_at
        FROM sessions WHERE digest=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, digest).Scan(
		&session.ID,
		&session.UserID,
		&session.Digest,
		&session.IssuedAt,
		&session.ExpiresAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	const query = `UPDATE sessions SET expires_at=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, expiresAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const query = `DELETE FROM sessions WHERE user_id=$1`

	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= $1`

	cmd, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

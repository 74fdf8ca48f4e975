package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-service/internal/auth"
	"github.com/spec-kit/social-service/internal/config"
	"github.com/spec-kit/social-service/internal/domain"
	"github.com/spec-kit/social-service/internal/repository"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

// SessionService owns the session lifecycle: minting opaque tokens at login,
// resolving presented tokens back to users, and revoking them at logout. It
// satisfies auth.TokenResolver.
type SessionService struct {
	sessions   repository.SessionRepository
	users      repository.UserRepository
	issuer     *auth.TokenIssuer
	sliding    bool
	minRefresh time.Duration
}

// NewSessionService builds the service from auth configuration.
func NewSessionService(cfg config.AuthConfig, sessions repository.SessionRepository, users repository.UserRepository) *SessionService {
	return &SessionService{
		sessions:   sessions,
		users:      users,
		issuer:     auth.NewTokenIssuer(cfg),
		sliding:    cfg.SlidingRefresh,
		minRefresh: cfg.MinRefreshInterval(),
	}
}

// Issue mints a new session for the user. Each call produces an independent
// token; concurrent logins never invalidate each other.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, *domain.Session, error) {
	now := time.Now()
	plaintext, digest, expiresAt, err := s.issuer.Issue(now)
	if err != nil {
		return "", nil, err
	}

	session := &domain.Session{
		UserID:    userID,
		Digest:    digest,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}
	return plaintext, session, nil
}

// Resolve maps a presented token to its user and session. Unknown and
// expired tokens fail identically; an expired row counts as nonexistent even
// while it is still persisted.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	session, err := s.sessions.GetByDigest(ctx, auth.Digest(token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("invalid token")
		}
		return nil, nil, err
	}

	now := time.Now()
	if session.Expired(now) {
		return nil, nil, apperrors.NewUnauthorized("invalid token")
	}

	if s.sliding {
		if err := s.maybeRefresh(ctx, session, now); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("invalid token")
		}
		return nil, nil, err
	}
	return user, session, nil
}

// maybeRefresh pushes the expiry out to now+TTL, at most once per
// minRefresh so hot tokens do not rewrite the row on every request.
func (s *SessionService) maybeRefresh(ctx context.Context, session *domain.Session, now time.Time) error {
	remaining := session.ExpiresAt.Sub(now)
	if remaining > s.issuer.TTL()-s.minRefresh {
		return nil
	}

	refreshed := now.Add(s.issuer.TTL())
	if err := s.sessions.UpdateExpiry(ctx, session.ID, refreshed); err != nil {
		if err == pgx.ErrNoRows {
			// revoked out from under us; the current request still holds a
			// session that was valid at resolution
			return nil
		}
		return err
	}
	session.ExpiresAt = refreshed
	return nil
}

// Revoke deletes exactly one session. A session already gone counts as
// revoked.
func (s *SessionService) Revoke(ctx context.Context, session *domain.Session) error {
	if err := s.sessions.Delete(ctx, session.ID); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}

// RevokeAll deletes every session belonging to the user.
func (s *SessionService) RevokeAll(ctx context.Context, userID string) (int64, error) {
	return s.sessions.DeleteByUser(ctx, userID)
}

// SweepExpired removes rows past their expiry. Correctness never depends on
// this; Resolve checks expiry on every hit.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now())
}

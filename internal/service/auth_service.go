package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-service/internal/auth"
	"github.com/spec-kit/social-service/internal/config"
	"github.com/spec-kit/social-service/internal/domain"
	"github.com/spec-kit/social-service/internal/events"
	"github.com/spec-kit/social-service/internal/repository"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	sessions    *SessionService
	dispatcher  events.Dispatcher
	bcryptCost  int
	minPassword int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	Sessions    *SessionService
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		profiles:    deps.ProfileRepo,
		sessions:    deps.Sessions,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.BcryptCost,
		minPassword: cfg.MinPasswordLength,
	}
}

// Register creates a new account with a blank profile. No session is issued;
// registration and login are separate steps.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username required", map[string]any{"field": "username"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email", map[string]any{"field": "email"})
	}
	if len(password) < s.minPassword {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"field": "password"})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, &domain.Profile{UserID: user.ID}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Username: user.Username})
	return user, nil
}

// Login verifies credentials and mints a session. Unknown usernames and
// wrong passwords produce the same error so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	user.LastLogin = &now

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{
		Username:  user.Username,
		ExpiresAt: session.ExpiresAt,
	})
	return user, token, session.ExpiresAt, nil
}

// Logout revokes exactly the presented session. Other sessions of the same
// user stay valid.
func (s *AuthService) Logout(ctx context.Context, user *domain.User, session *domain.Session) error {
	if err := s.sessions.Revoke(ctx, session); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserLoggedOut, user.ID, events.UserLoggedOutPayload{
		Username: user.Username,
		Revoked:  1,
	})
	return nil
}

// LogoutAll revokes every session the user holds.
func (s *AuthService) LogoutAll(ctx context.Context, user *domain.User) error {
	revoked, err := s.sessions.RevokeAll(ctx, user.ID)
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventUserLoggedOut, user.ID, events.UserLoggedOutPayload{
		Username:    user.Username,
		AllSessions: true,
		Revoked:     revoked,
	})
	return nil
}

// Sessions exposes the session service for middleware wiring.
func (s *AuthService) Sessions() *SessionService {
	return s.sessions
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

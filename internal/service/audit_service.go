package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/social-service/internal/events"
)

// AuditService writes an audit line for each auth lifecycle event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleRegistered)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleLoggedIn)
	a.dispatcher.Subscribe(events.EventUserLoggedOut, a.handleLoggedOut)
}

func (a *AuditService) handleRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLoggedIn(_ context.Context, event events.Event) error {
	a.logger.Info("UserLoggedIn", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info("UserLoggedOut", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

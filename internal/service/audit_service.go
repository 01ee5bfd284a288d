package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/events"
)

// AuditService writes an audit trail entry for every lifecycle event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to every lifecycle event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventAccountRegistered,
		events.EventAccountLoggedIn,
		events.EventCredentialRotated,
		events.EventFieldModified,
		events.EventAccountDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Int("staff_id", event.AccountID),
		zap.String("username", event.Username),
		zap.Time("at", event.Timestamp),
	}
	if event.Field != "" {
		fields = append(fields, zap.String("field", string(event.Field)))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

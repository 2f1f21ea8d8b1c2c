package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/config"
	"github.com/spec-kit/support-copilot/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueFiled, n.handleIssueFiled)
	n.dispatcher.Subscribe(events.EventIssueResolved, n.handleIssueResolved)
	n.dispatcher.Subscribe(events.EventMessageAdded, n.handleMessageAdded)
	n.dispatcher.Subscribe(events.EventCriticalDetected, n.handleCriticalDetected)
}

func (n *NotificationService) handleIssueFiled(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueFiled", zap.Int64("issue_id", event.IssueID), zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIssueResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("IssueResolved", zap.Int64("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMessageAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("MessageAdded", zap.Int64("issue_id", event.IssueID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCriticalDetected(ctx context.Context, event events.Event) error {
	n.logger.Warn("CriticalDetected", zap.Int64("issue_id", event.IssueID), zap.String("customer_id", event.CustomerID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("issue_id", event.IssueID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("issue_id", event.IssueID),
		zap.String("event_type", string(event.Type)))
}

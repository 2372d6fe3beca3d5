package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/config"
	"github.com/spec-kit/book-catalog/internal/events"
)

// NotificationService emits notifications for catalog lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	httpClient *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
	n.dispatcher.Subscribe(events.EventBookCreated, n.handleBookEvent)
	n.dispatcher.Subscribe(events.EventBookUpdated, n.handleBookEvent)
	n.dispatcher.Subscribe(events.EventBookDeleted, n.handleBookEvent)
}

func (n *NotificationService) handleUserCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("UserCreated", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailStub(event)
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleBookEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("BookEvent",
		zap.String("event_type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Info("email notification (stub)",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)),
	)
}

func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("webhook payload marshal failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("webhook request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	_ = resp.Body.Close()
}

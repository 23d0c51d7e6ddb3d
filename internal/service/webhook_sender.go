package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"roadIncidents/internal/config"
	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"
)

// EventSource hands out queued events. BRPop returns e.ErrQueueEmpty when
// nothing arrived within timeout.
type EventSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.IncidentCreatedEvent, error)
}

const (
	webhookMaxAttempts = 3
	webhookPollTimeout = 5 * time.Second
)

// WebhookSender drains the event queue and POSTs every event as JSON to the
// configured URL.
type WebhookSender struct {
	logger *slog.Logger
	cfg    config.WebhookConfig
	source EventSource
	http   *http.Client

	// backoff is the pause before the given retry attempt.
	backoff func(attempt int) time.Duration
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, source EventSource) *WebhookSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		source:  source,
		http:    &http.Client{Timeout: timeout},
		backoff: func(attempt int) time.Duration { return time.Duration(attempt) * time.Second },
	}
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhookSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhookSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.source.BRPop(ctx, webhookPollTimeout)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			sleep(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Info("sending webhook", slog.String("incident_id", event.IncidentID.String()))
		s.Send(ctx, event)
	}
}

// Send delivers one event, retrying failed attempts. It reports whether a
// 2xx response was received.
func (s *WebhookSender) Send(ctx context.Context, event domain.IncidentCreatedEvent) bool {
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal webhook payload failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= webhookMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}

		reason, ok := s.post(ctx, body)
		if ok {
			return true
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < webhookMaxAttempts {
			sleep(ctx, s.backoff(attempt))
		}
	}

	s.logger.Error("webhook dropped", slog.String("incident_id", event.IncidentID.String()))
	return false
}

func (s *WebhookSender) post(ctx context.Context, body []byte) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err.Error(), false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return err.Error(), false
	}
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Status, false
	}
	return "", true
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

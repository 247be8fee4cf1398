// Package webhook delivers domain events to an external HTTP endpoint.
// Events are serialized into JSON envelopes and POSTed in one batch per
// publish through the instrumented platform client, which supplies retry,
// circuit breaking, rate limiting, and tracing.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/platform/httpclient"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that Publisher implements ports.EventPublisher.
var _ ports.EventPublisher = (*Publisher)(nil)

// envelope is the wire representation of a single domain event.
type envelope struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher POSTs domain events to the configured webhook endpoint.
type Publisher struct {
	client *httpclient.Client
	logger *slog.Logger
}

// New creates a Publisher over the given instrumented client. The client's
// base URL is the webhook endpoint.
func New(client *httpclient.Client, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// Publish delivers the events as one JSON batch. A non-2xx response is an
// error; the caller decides whether to log or propagate.
func (p *Publisher) Publish(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	envelopes := make([]envelope, 0, len(events))
	for _, e := range events {
		envelopes = append(envelopes, envelope{
			ID:         e.EventID(),
			Name:       e.EventName(),
			OccurredAt: e.OccurredAt(),
			Data:       e,
		})
	}

	body, err := json.Marshal(envelopes)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.client.BaseURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("delivering events: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	p.logger.DebugContext(ctx, "published domain events", slog.Int("count", len(events)))
	return nil
}

// Name identifies the publisher's downstream for health reporting.
func (p *Publisher) Name() string {
	return p.client.Name()
}

// HealthCheck reports the webhook endpoint's availability from the client's
// circuit breaker state.
func (p *Publisher) HealthCheck(ctx context.Context) error {
	return p.client.HealthCheck(ctx)
}

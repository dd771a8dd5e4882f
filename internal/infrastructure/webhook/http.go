package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/WojciechM98/Team-Management-System/internal/application/ports"
)

// HTTPEmitter delivers audit events to a collector endpoint as JSON POSTs.
// Audit delivery is fire-and-forget from the caller's point of view, so the
// emitter keeps a short per-attempt timeout and retries a failed delivery
// once before giving up.
type HTTPEmitter struct {
	client    *http.Client
	url       string
	headers   map[string]string
	retryWait time.Duration
}

// HTTPEmitterOption configures HTTPEmitter.
type HTTPEmitterOption func(*HTTPEmitter)

// WithClient sets the HTTP client (default: 5s timeout per attempt).
func WithClient(c *http.Client) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		e.client = c
	}
}

// WithHeader sets a header sent on every delivery (e.g. Authorization).
func WithHeader(key, value string) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		if e.headers == nil {
			e.headers = make(map[string]string)
		}
		e.headers[key] = value
	}
}

// WithRetryWait sets the pause before the single retry attempt.
func WithRetryWait(d time.Duration) HTTPEmitterOption {
	return func(e *HTTPEmitter) {
		e.retryWait = d
	}
}

// NewHTTPEmitter returns a WebhookEmitter that POSTs AuditEvent as JSON to url.
func NewHTTPEmitter(url string, opts ...HTTPEmitterOption) *HTTPEmitter {
	e := &HTTPEmitter{
		client:    &http.Client{Timeout: 5 * time.Second},
		url:       url,
		retryWait: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit implements ports.WebhookEmitter. A transport error or 5xx response
// triggers one retry; a 4xx means the collector rejected the event and is
// returned immediately.
func (e *HTTPEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = e.deliver(ctx, event.Event, body)
	if err == nil || !retryable(err) {
		return err
	}
	select {
	case <-time.After(e.retryWait):
	case <-ctx.Done():
		return ctx.Err()
	}
	return e.deliver(ctx, event.Event, body)
}

func (e *HTTPEmitter) deliver(ctx context.Context, eventType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Audit-Event", eventType)
	for k, v := range e.headers {
		req.Header.Set(k, v)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &emitError{status: resp.StatusCode}
	}
	return nil
}

func retryable(err error) bool {
	if ee, ok := err.(*emitError); ok {
		return ee.status >= 500
	}
	return true
}

type emitError struct {
	status int
}

func (e *emitError) Error() string {
	return fmt.Sprintf("audit collector returned status %d", e.status)
}

var _ ports.WebhookEmitter = (*HTTPEmitter)(nil)

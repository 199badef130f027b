package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app-vet/internal/platform/httpclient"
)

// Webhook publica el aviso como JSON en una URL (gateway de SMS, n8n, etc.).
type Webhook struct {
	client *httpclient.Client
	url    string
	now    func() time.Time
}

type webhookPayload struct {
	Contact string    `json:"contact"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

func NewWebhook(url string, timeout time.Duration) (*Webhook, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("notify: webhook url is required")
	}
	c, err := httpclient.New(httpclient.Options{Timeout: timeout, UserAgent: "app-vet"})
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	return &Webhook{client: c, url: url, now: time.Now}, nil
}

func (w *Webhook) Send(ctx context.Context, contact, message string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrNoContact
	}
	err := w.client.DoJSON(ctx, http.MethodPost, w.url, nil, webhookPayload{
		Contact: contact,
		Message: message,
		SentAt:  w.now().UTC(),
	}, nil)
	if err != nil {
		return fmt.Errorf("notify: webhook: %w", err)
	}
	return nil
}

package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app-vet/internal/platform/httpclient"
	"app-vet/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Config del cliente Odin. BaseURL y APIKey vienen de ODIN_BASE_URL / ODIN_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper
}

type Client struct {
	http       *httpclient.Client
	configured bool
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	base := strings.TrimSpace(cfg.BaseURL)
	key := strings.TrimSpace(cfg.APIKey)

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   base,
		Timeout:   timeout,
		Transport: cfg.Transport,
		UserAgent: "app-vet",
		Headers:   map[string]string{h: key},
	})
	if err != nil {
		return nil, fmt.Errorf("odin: %w", err)
	}
	return &Client{http: hc, configured: base != "" && key != ""}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ClinicID string `json:"clinic_id"`
}

// VerifyToken le pide a Odin los claims de un token.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrOdinUnauthorized
	}

	var out verifyResponse
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath,
		map[string]string{"Authorization": "Bearer " + token},
		map[string]string{"token": token},
		&out,
	)
	switch code := httpclient.StatusCode(err); {
	case err == nil:
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return auth.Claims{}, ErrOdinUnauthorized
	default:
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrOdinUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrOdinUpstream)
	}

	// Sin rol reconocible el usuario es tutor.
	role, ok := auth.ParseRole(out.Role)
	if !ok {
		role = auth.RoleTutor
	}

	return auth.Claims{
		UserID:   out.UserID,
		Username: strings.TrimSpace(out.Username),
		Role:     role,
		ClinicID: strings.TrimSpace(out.ClinicID),
	}, nil
}

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/utils"
	"github.com/MKhiriev/forkeys/models"
)

const (
	registerPath      = "/api/register"
	recoveryEmailPath = "/api/send_recovery_email"
)

type httpRecoveryAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPRecoveryAdapter constructs an HTTP/REST implementation of
// [RecoveryAdapter]. It normalises and validates adapterCfg.BaseURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRecoveryAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (RecoveryAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	return &httpRecoveryAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [RecoveryAdapter]. It POSTs req to /api/register.
func (h *httpRecoveryAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	return h.post(ctx, registerPath, req)
}

// RequestRecoveryEmail implements [RecoveryAdapter]. It POSTs req to
// /api/send_recovery_email.
func (h *httpRecoveryAdapter) RequestRecoveryEmail(ctx context.Context, req models.RecoveryEmailRequest) error {
	return h.post(ctx, recoveryEmailPath, req)
}

func (h *httpRecoveryAdapter) post(ctx context.Context, path string, body any) error {
	var status models.StatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&status).
		Post(path)
	if err != nil {
		h.logger.Err(err).Str("path", path).Msg("request to registry server failed")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("path", path).Int("status", resp.StatusCode()).Msg("registry server returned an error")
		return err
	}

	if status.Status != "" && status.Status != models.StatusSuccess {
		return fmt.Errorf("%w: status %q", ErrUnexpectedResponse, status.Status)
	}

	h.logger.Debug().Str("path", path).Msg("registry server request succeeded")
	return nil
}

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "forkeys-client"

// HTTPClient embeds *resty.Client preset for JSON calls to the recovery
// registry.
//
//	client := utils.NewHTTPClient("https://keys.example.com", 10*time.Second)
//	resp, err := client.R().SetBody(req).Post("/api/register")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client bound to baseURL. A zero
// timeout leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

package models

import "time"

// RegisterRequest is sent to the registry server to enable e-mail recovery.
type RegisterRequest struct {
	Email    string `json:"email"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RecoveryEmailRequest asks the registry server to mail the registered
// question and answer back to Email.
type RecoveryEmailRequest struct {
	Email string `json:"email"`
}

// StatusResponse is the body returned by the registry endpoints.
type StatusResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registration is a stored registry row. Question and Answer are kept
// encrypted under the server key and carry an "enc:v1:" tag; untagged
// values are plain text rows from older deployments.
type Registration struct {
	Email     string
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServerStatus is returned by GET /api/status.
type ServerStatus struct {
	Status     string `json:"status"`
	Server     string `json:"server"`
	Version    string `json:"version"`
	Encryption string `json:"encryption"`
	Address    string `json:"address"`
}

// FrontendConfig is returned by GET /api/config. It never carries secrets.
type FrontendConfig struct {
	APIBaseURL string `json:"api_base_url"`
	Version    string `json:"version"`
}

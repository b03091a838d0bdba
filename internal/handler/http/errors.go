// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

// Messages written into the "error" and "message" fields of
// [models.StatusResponse]. Clients match on some of them, so they must stay
// stable.
const (
	msgInvalidJSON     = "Invalid JSON was passed"
	msgEmailRequired   = "Email required"
	msgNeedEmail       = "Need email address"
	msgInvalidEmail    = "Invalid email address"
	msgEmailNotFound   = "Email not found in database"
	msgRecoverySent    = "Recovery email sent"
	msgEmailSent       = "Email sent"
	msgSendFailed      = "Failed to send email"
	msgTooManyRequests = "Too many requests"
	msgInternalError   = "Internal server error"
)

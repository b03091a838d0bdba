package utils

import "github.com/google/uuid"

// maxTraceIDLen bounds a caller supplied X-Trace-ID.
const maxTraceIDLen = 64

// TraceIDSource mints request trace ids for the registry server.
type TraceIDSource struct {
	newV7 func() (uuid.UUID, error)
}

func NewTraceIDSource() *TraceIDSource {
	return &TraceIDSource{newV7: uuid.NewV7}
}

// Next returns a UUIDv7, or a random UUIDv4 when the clock source fails.
func (s *TraceIDSource) Next() string {
	v7, err := s.newV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Resolve keeps an inbound trace id when it is safe to echo into logs and
// headers, and mints a new one otherwise.
func (s *TraceIDSource) Resolve(inbound string) string {
	if ValidTraceID(inbound) {
		return inbound
	}
	return s.Next()
}

// ValidTraceID reports whether id is non-empty printable ASCII without
// spaces and at most 64 bytes long.
func ValidTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

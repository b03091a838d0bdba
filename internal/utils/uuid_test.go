package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDSource_Next(t *testing.T) {
	s := NewTraceIDSource()

	a := s.Next()
	b := s.Next()

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
}

func TestTraceIDSource_ClockFailureFallsBackToV4(t *testing.T) {
	s := &TraceIDSource{newV7: func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("clock went backwards")
	}}

	parsed, err := uuid.Parse(s.Next())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestTraceIDSource_Resolve(t *testing.T) {
	s := NewTraceIDSource()

	tests := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{"caller id kept", "req-42", true},
		{"empty", "", false},
		{"newline injection", "abc\n{\"level\":\"error\"}", false},
		{"space", "a b", false},
		{"non ascii", "трасса", false},
		{"too long", strings.Repeat("a", 65), false},
		{"max length", strings.Repeat("a", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Resolve(tt.inbound)
			if tt.keep {
				assert.Equal(t, tt.inbound, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

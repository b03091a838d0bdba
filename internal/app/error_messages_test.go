package app

import (
	"testing"

	"github.com/MKhiriev/forkeys/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(service.NoVaultFound), "forkeys init")
	assert.Contains(t, Hint(service.WrongPassword), "forkeys recover")
	assert.Empty(t, Hint(service.TitleRequired))
	assert.Empty(t, Hint(service.KindUnknown))
}

package log

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"short value fully masked", "abc", "***"},
		{"medium value keeps prefix", "shpat_1", "shpa***"},
		{"long token keeps prefix and suffix", "shpat_0123456789abcdef", "shpa***cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskSensitiveData(tt.input))
		})
	}
}

func TestWithComponent(t *testing.T) {
	entry := WithComponent("commerce")

	assert.Equal(t, "commerce", entry.Data["component"])
}

func TestWithComponentAndFields(t *testing.T) {
	entry := WithComponentAndFields("cache", log.Fields{
		"key": "products:list",
		"ttl": "5m",
	})

	assert.Equal(t, "cache", entry.Data["component"])
	assert.Equal(t, "products:list", entry.Data["key"])
	assert.Equal(t, "5m", entry.Data["ttl"])
}

func TestWithComponentAndFields_DoesNotMutateInput(t *testing.T) {
	fields := log.Fields{"key": "value"}
	_ = WithComponentAndFields("api", fields)

	// The caller's map must stay untouched.
	_, exists := fields["component"]
	assert.False(t, exists)
}

func TestSetDebugMode(t *testing.T) {
	original := log.GetLevel()
	defer log.SetLevel(original)

	SetDebugMode(true)
	assert.Equal(t, log.TraceLevel, log.GetLevel())

	SetDebugMode(false)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

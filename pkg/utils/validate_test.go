package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "ravi.kumar@example.in", " x@y.z "} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "a b@c.d", "@b.c", "a@.c d"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestValidPhone(t *testing.T) {
	for _, ok := range []string{"9876543210", "+91 98765 43210", "1"} {
		assert.True(t, ValidPhone(ok), ok)
	}
	for _, bad := range []string{"", "0123", "+", "12345678901234567", "98x76"} {
		assert.False(t, ValidPhone(bad), bad)
	}
	assert.Equal(t, "+919876543210", NormalizePhone(" +91 98765\t43210 "))
}

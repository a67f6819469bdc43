package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("QB_STR", "  value ")
	t.Setenv("QB_INT", "42")
	t.Setenv("QB_BAD_INT", "x")
	t.Setenv("QB_BOOL", "on")
	t.Setenv("QB_LIST", "a, ,b")

	assert.Equal(t, "value", String("QB_STR", "def", nil))
	assert.Equal(t, "def", String("QB_MISSING", "def", nil))
	assert.Equal(t, 42, Int("QB_INT", 1, nil))
	assert.Equal(t, 1, Int("QB_BAD_INT", 1, nil))
	assert.True(t, Bool("QB_BOOL", false))
	assert.True(t, Bool("QB_MISSING", true))
	assert.Equal(t, []string{"a", "b"}, List("QB_LIST", nil))
	assert.Equal(t, []string{"x"}, List("QB_MISSING", []string{"x"}))
}

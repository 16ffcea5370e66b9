package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")

	buf.Reset()
	New(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestErrNilOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)

	buf.Reset()
	logger.Info("failed", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), "boom")
}

func TestAnonymizeEmail(t *testing.T) {
	assert.Empty(t, AnonymizeEmail(""))

	hashed := AnonymizeEmail("a@x.com")
	assert.True(t, strings.HasPrefix(hashed, "user:"))
	assert.NotContains(t, hashed, "a@x.com")
	assert.Equal(t, hashed, AnonymizeEmail("a@x.com"))
	assert.NotEqual(t, hashed, AnonymizeEmail("b@x.com"))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	assert.Equal(t, "[token:6 chars]", SanitizeToken("secret"))
	assert.NotContains(t, SanitizeToken("supersecret"), "supersecret")
}

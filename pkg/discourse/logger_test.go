package discourse_test

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

func TestNewHCLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := discourse.NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:       "discourse",
		Level:      hclog.Debug,
		Output:     &buf,
		JSONFormat: true,
	}))

	logger.Info("User created", map[string]interface{}{"user_id": 42, "username": "johndoe"})
	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})

	output := buf.String()
	assert.Contains(t, output, `"@message":"User created"`)
	assert.Contains(t, output, `"user_id":42`)
	assert.Contains(t, output, `"username":"johndoe"`)
	assert.Contains(t, output, `"method":"GET"`)
}

func TestNewHCLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := discourse.NewHCLogger(hclog.New(&hclog.LoggerOptions{Level: hclog.Warn, Output: &buf}))

	logger.Debug("hidden", nil)
	logger.Warn("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		logger := discourse.NewHCLogger(nil)
		logger.Error("ignored", map[string]interface{}{"key": "value"})
	})
}

//go:build integration

package integration

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
	"github.com/fivetwenty-io/discourse/pkg/discourseclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Host         string
	APIKey       string
	APIUsername  string
	InsecureHTTP bool
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Host:         os.Getenv("DISCOURSE_HOST"),
		APIKey:       os.Getenv("DISCOURSE_API_KEY"),
		APIUsername:  os.Getenv("DISCOURSE_API_USERNAME"),
		InsecureHTTP: os.Getenv("DISCOURSE_INSECURE_HTTP") == "true",
		Verbose:      os.Getenv("DISCOURSE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Host == "" || config.APIKey == "" {
		t.Skip("DISCOURSE_HOST or DISCOURSE_API_KEY not set, skipping integration test")
	}
}

// NewClient builds a client against the configured forum.
func (config *TestConfig) NewClient(t *testing.T) discourse.Client {
	t.Helper()

	level := hclog.Warn
	if config.Verbose {
		level = hclog.Debug
	}

	client, err := discourseclient.New(&discourse.Config{
		Host:         config.Host,
		InsecureHTTP: config.InsecureHTTP,
		APIKey:       config.APIKey,
		APIUsername:  config.APIUsername,
		Debug:        config.Verbose,
		Logger:       discourse.NewHCLogger(hclog.New(&hclog.LoggerOptions{Name: "integration", Level: level})),
	})
	require.NoError(t, err)

	return client
}

// GenerateTestName generates a unique username-safe name for test resources
func GenerateTestName(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%1_000_000_000)

	return strings.ToLower(name)
}

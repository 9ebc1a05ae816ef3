// Package discourseclient provides the main entry point for creating Discourse API clients
package discourseclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/discourse/internal/client"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// New creates a new Discourse API client. Host and APIKey are required; the
// config is not modified.
func New(config *discourse.Config) (discourse.Client, error) {
	if config == nil {
		return nil, discourse.ErrConfigRequired
	}

	if strings.TrimSpace(config.Host) == "" {
		return nil, discourse.ErrHostRequired
	}

	if config.APIKey == "" {
		return nil, discourse.ErrAPIKeyRequired
	}

	resolved := *config
	if resolved.APIUsername == "" {
		resolved.APIUsername = discourse.DefaultAPIUsername
	}

	apiClient, err := client.New(BaseURL(config.Host, config.InsecureHTTP), &resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithKey creates a new client for host acting as apiUsername over https.
func NewWithKey(host, apiKey, apiUsername string) (discourse.Client, error) {
	return New(&discourse.Config{
		Host:        host,
		APIKey:      apiKey,
		APIUsername: apiUsername,
	})
}

// BaseURL builds the forum URL from a host name. https is used unless
// insecureHTTP is set; a host that already has a scheme keeps it.
func BaseURL(host string, insecureHTTP bool) string {
	base := strings.TrimSuffix(strings.TrimSpace(host), "/")
	if strings.HasPrefix(base, schemeHTTP) || strings.HasPrefix(base, schemeHTTPS) {
		return base
	}

	if insecureHTTP {
		return schemeHTTP + base
	}

	return schemeHTTPS + base
}

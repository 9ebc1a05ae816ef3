package auth

import (
	"net/url"

	"github.com/fivetwenty-io/discourse/internal/constants"
)

// Authenticator adds credentials to an outgoing query string. actAs, when
// non-empty, replaces the configured acting username for that request.
type Authenticator interface {
	Authenticate(query url.Values, actAs string) url.Values
}

// Credentials is an API key and acting username pair. It is immutable after
// construction and safe for concurrent use.
type Credentials struct {
	apiKey      string
	apiUsername string
}

// NewCredentials creates credentials for the given key and acting username.
func NewCredentials(apiKey, apiUsername string) *Credentials {
	return &Credentials{
		apiKey:      apiKey,
		apiUsername: apiUsername,
	}
}

// Authenticate returns a copy of query with api_key and api_username set.
func (c *Credentials) Authenticate(query url.Values, actAs string) url.Values {
	authed := make(url.Values, len(query)+2)
	for key, values := range query {
		authed[key] = append([]string(nil), values...)
	}

	username := c.apiUsername
	if actAs != "" {
		username = actAs
	}

	authed.Set(constants.QueryAPIKey, c.apiKey)
	authed.Set(constants.QueryAPIUsername, username)

	return authed
}

// Username returns the configured acting username.
func (c *Credentials) Username() string {
	return c.apiUsername
}

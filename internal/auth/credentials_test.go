package auth_test

import (
	"net/url"
	"testing"

	"github.com/fivetwenty-io/discourse/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestCredentials_Authenticate(t *testing.T) {
	t.Parallel()

	creds := auth.NewCredentials("secret-key", "system")

	t.Run("adds key and acting username", func(t *testing.T) {
		t.Parallel()

		query := creds.Authenticate(nil, "")
		assert.Equal(t, "secret-key", query.Get("api_key"))
		assert.Equal(t, "system", query.Get("api_username"))
	})

	t.Run("keeps existing parameters", func(t *testing.T) {
		t.Parallel()

		query := creds.Authenticate(url.Values{"order": []string{"created"}}, "")
		assert.Equal(t, "created", query.Get("order"))
		assert.Equal(t, "secret-key", query.Get("api_key"))
	})

	t.Run("act as overrides username for one request", func(t *testing.T) {
		t.Parallel()

		query := creds.Authenticate(nil, "johndoe")
		assert.Equal(t, "johndoe", query.Get("api_username"))
		assert.Equal(t, "system", creds.Username())
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()

		original := url.Values{"page": []string{"2"}}
		_ = creds.Authenticate(original, "")
		assert.Len(t, original, 1)
		assert.Empty(t, original.Get("api_key"))
	})
}

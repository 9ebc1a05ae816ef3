//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/accounts"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// TestUserLifecycle adds, suspends, unsuspends and deletes a user.
func TestUserLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	service := accounts.NewService(client.Users(), nil)
	ctx := context.Background()

	username := GenerateTestName("itest")
	request := &discourse.CreateUserRequest{
		Name:     "Integration Test",
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery-" + username,
	}

	added, err := service.AddNewUser(ctx, request)
	require.NoError(t, err)
	require.True(t, added.Success, "errors: %v", added.Errors)
	assert.Equal(t, accounts.MessageUserAdded, added.Data)

	lookup, err := client.Users().LookupIDByUsername(ctx, username)
	require.NoError(t, err)
	require.True(t, lookup.Success)

	defer func() {
		_, _ = client.Users().DeleteByID(ctx, lookup.Data)
	}()

	suspended, err := service.SuspendUser(ctx, username, time.Now().Add(24*time.Hour), "integration test")
	require.NoError(t, err)
	assert.True(t, suspended.Success, "errors: %v", suspended.Errors)

	// Creating the same username again unsuspends it.
	recreated, err := client.Users().Create(ctx, request)
	require.NoError(t, err)
	require.True(t, recreated.Success, "errors: %v", recreated.Errors)

	if recreated.Data != nil {
		assert.Equal(t, discourse.MessageUnsuspendedViaCreation, recreated.Data.Message)
	}

	unsuspended, err := service.UnsuspendUser(ctx, username)
	require.NoError(t, err)
	assert.True(t, unsuspended.Success)
}

// TestLatestTopics lists the latest topics.
func TestLatestTopics(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	result, err := config.NewClient(t).Topics().Latest(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success, "errors: %v", result.Errors)
	assert.NotNil(t, result.Data)
}

// TestUnknownUser checks that a missing user is an envelope failure, not an error.
func TestUnknownUser(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	result, err := config.NewClient(t).Users().LookupIDByUsername(context.Background(), GenerateTestName("missing"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

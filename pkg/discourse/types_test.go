package discourse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

func TestHoneypot_ReversedChallenge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		challenge string
		want      string
	}{
		{challenge: "abcd", want: "dcba"},
		{challenge: "xyz", want: "zyx"},
		{challenge: "a", want: "a"},
		{challenge: "", want: ""},
		{challenge: "héllo", want: "olléh"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.challenge, func(t *testing.T) {
			t.Parallel()

			honeypot := &discourse.Honeypot{Challenge: testCase.challenge}
			assert.Equal(t, testCase.want, honeypot.ReversedChallenge())
		})
	}
}

func TestHoneypot_ReversedChallengeMatchesByteReversal(t *testing.T) {
	t.Parallel()

	challenge := "3f9a0c6be17d24e58b"

	reversed := []byte(challenge)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	honeypot := &discourse.Honeypot{Challenge: challenge}
	assert.Equal(t, string(reversed), honeypot.ReversedChallenge())
}

func TestUser_IsSuspended(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&discourse.User{}).IsSuspended(now))
	assert.False(t, (&discourse.User{SuspendedTill: &past}).IsSuspended(now))
	assert.True(t, (&discourse.User{SuspendedTill: &future}).IsSuspended(now))
}

func TestCreateUserRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := discourse.CreateUserRequest{Name: "John Doe", Username: "johndoe", Email: "j@example.com", Password: "pw"}
	require.NoError(t, valid.Validate())

	invalid := discourse.CreateUserRequest{Username: "johndoe", Email: "nope"}
	assert.Equal(t, []string{
		"email: must be a valid email address",
		"name: cannot be blank",
		"password: cannot be blank",
	}, discourse.ValidationMessages(invalid.Validate()))
}

func TestCreateCategoryRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request discourse.CreateCategoryRequest
		wantErr bool
	}{
		{name: "valid", request: discourse.CreateCategoryRequest{Name: "News", Color: "0088CC"}},
		{name: "with text color", request: discourse.CreateCategoryRequest{Name: "News", Color: "0088cc", TextColor: "FFFFFF"}},
		{name: "missing name", request: discourse.CreateCategoryRequest{Color: "0088CC"}, wantErr: true},
		{name: "hash prefix", request: discourse.CreateCategoryRequest{Name: "News", Color: "#0088CC"}, wantErr: true},
		{name: "bad text color", request: discourse.CreateCategoryRequest{Name: "News", Color: "0088CC", TextColor: "white"}, wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.request.Validate()
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePostRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, discourse.CreatePostRequest{Raw: "hello", TopicID: 1}.Validate())
	assert.Equal(t, []string{"topic_id: cannot be blank"},
		discourse.ValidationMessages(discourse.CreatePostRequest{Raw: "hello"}.Validate()))
	assert.Equal(t, []string{"topic_id: must be no less than 1"},
		discourse.ValidationMessages(discourse.CreatePostRequest{Raw: "hello", TopicID: -3}.Validate()))
}

func TestSuspendRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, discourse.SuspendRequest{Until: time.Now(), Reason: "spam"}.Validate())
	assert.Equal(t, []string{"reason: cannot be blank", "suspend_until: cannot be blank"},
		discourse.ValidationMessages(discourse.SuspendRequest{}.Validate()))
}

func TestValidationMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, discourse.ValidationMessages(nil))
	assert.Equal(t, []string{"boom"}, discourse.ValidationMessages(errors.New("boom")))
}

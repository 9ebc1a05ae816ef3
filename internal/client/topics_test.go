package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

func TestTopicsClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("posts as the given user", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/posts.json", r.URL.Path)
			assert.Equal(t, "johndoe", r.URL.Query().Get("api_username"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "Welcome", r.PostForm.Get("title"))
			assert.Equal(t, "Hello everyone, glad to be here.", r.PostForm.Get("raw"))
			assert.Equal(t, "5", r.PostForm.Get("category"))
			assert.Equal(t, "regular", r.PostForm.Get("archetype"))

			writeJSON(w, http.StatusOK, `{"id":100,"topic_id":12,"topic_slug":"welcome","post_number":1,"username":"johndoe"}`)
		})

		result, err := client.Topics().Create(context.Background(), &discourse.CreateTopicRequest{
			Title:      "Welcome",
			Raw:        "Hello everyone, glad to be here.",
			CategoryID: 5,
			Username:   "johndoe",
		})
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, int64(100), result.Data.ID)
		assert.Equal(t, int64(12), result.Data.TopicID)
		assert.Equal(t, 1, result.Data.PostNumber)
	})

	t.Run("defaults to the configured username", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, testAPIUsername, r.URL.Query().Get("api_username"))
			assert.NoError(t, r.ParseForm())
			assert.Empty(t, r.PostForm.Get("category"))

			writeJSON(w, http.StatusOK, `{"id":101,"topic_id":13,"post_number":1,"username":"system"}`)
		})

		result, err := client.Topics().Create(context.Background(), &discourse.CreateTopicRequest{
			Title: "Welcome",
			Raw:   "Hello everyone, glad to be here.",
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("title too short", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, `{"action":"create_post","errors":["Title is too short"]}`)
		})

		result, err := client.Topics().Create(context.Background(), &discourse.CreateTopicRequest{Title: "Hi", Raw: "body text"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, []string{"Title is too short"}, result.Errors)
	})

	t.Run("queued for review", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"action":"enqueued","pending_count":1}`)
		})

		result, err := client.Topics().Create(context.Background(), &discourse.CreateTopicRequest{Title: "Welcome", Raw: "body text"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.HasWarnings())
		assert.Nil(t, result.Data)
	})
}

func TestTopicsClient_Latest(t *testing.T) {
	t.Parallel()

	t.Run("returns topics in order", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "/latest.json", r.URL.Path)
			assert.Equal(t, "created", r.URL.Query().Get("order"))

			writeJSON(w, http.StatusOK, `{"users":[],"topic_list":{"can_create_topic":true,"topics":[`+
				`{"id":3,"title":"Third","slug":"third","posts_count":1,"category_id":1},`+
				`{"id":1,"title":"First","slug":"first","posts_count":4,"category_id":2,"pinned":true},`+
				`{"id":2,"title":"Second","slug":"second","posts_count":2,"category_id":1}]}}`)
		})

		result, err := client.Topics().Latest(context.Background())
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Len(t, result.Data, 3)

		ids := []int64{result.Data[0].ID, result.Data[1].ID, result.Data[2].ID}
		assert.Equal(t, []int64{3, 1, 2}, ids)
		assert.Equal(t, "First", result.Data[1].Title)
		assert.Equal(t, 4, result.Data[1].PostsCount)
		assert.True(t, result.Data[1].Pinned)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"topic_list":{"topics":[]}}`)
		})

		result, err := client.Topics().Latest(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)
	})

	t.Run("missing topic list", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"users":[]}`)
		})

		_, err := client.Topics().Latest(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, discourse.ErrUnexpectedResponse)
	})
}

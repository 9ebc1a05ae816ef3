package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

const (
	opCreatePost = "could not create post in topic id"

	actionEnqueued = "enqueued"
)

// PostsClient implements discourse.PostsClient.
type PostsClient struct {
	httpClient *http.Client
}

// NewPostsClient creates a new posts client.
func NewPostsClient(httpClient *http.Client) *PostsClient {
	return &PostsClient{
		httpClient: httpClient,
	}
}

// Create implements discourse.PostsClient.Create.
func (c *PostsClient) Create(ctx context.Context, request *discourse.CreatePostRequest) (*discourse.Result[*discourse.Post], error) {
	if request == nil {
		return discourse.Fail[*discourse.Post](discourse.ErrInvalidRequest.Error()), nil
	}

	err := request.Validate()
	if err != nil {
		return discourse.Fail[*discourse.Post](discourse.ValidationMessages(err)...), nil
	}

	form := url.Values{}
	form.Set("raw", request.Raw)
	form.Set("topic_id", strconv.FormatInt(request.TopicID, 10))

	if request.CategoryID > 0 {
		form.Set("category", strconv.FormatInt(request.CategoryID, 10))
	}

	return submitPost(ctx, c.httpClient, opCreatePost, strconv.FormatInt(request.TopicID, 10), form, request.Username)
}

// submitPost sends a form to the posts endpoint, which creates both topics
// and replies. A post held for moderation succeeds with a warning and no data.
func submitPost(
	ctx context.Context,
	httpClient *http.Client,
	op, subject string,
	form url.Values,
	actAs string,
) (*discourse.Result[*discourse.Post], error) {
	resp, err := httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   constants.APIPathPosts,
		Body:   form,
		ActAs:  actAs,
	})
	if err != nil {
		return nil, discourse.NewDomainError(op, subject, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.Post](resp), nil
	}

	var body struct {
		discourse.Post

		Action string `json:"action"`
	}

	err = decode(resp, &body, op, subject)
	if err != nil {
		return nil, err
	}

	if body.Action == actionEnqueued {
		return discourse.Warn[*discourse.Post](nil, "post was queued for review"), nil
	}

	if body.ID == 0 {
		return nil, unexpected(op, subject, nil)
	}

	return discourse.OK(&body.Post), nil
}

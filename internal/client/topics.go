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
	opCreateTopic   = "could not create topic"
	opLatestTopics  = "could not list latest topics"
	subjectLatest   = constants.APIPathLatest
	queryParamOrder = "order"
)

// TopicsClient implements discourse.TopicsClient.
type TopicsClient struct {
	httpClient *http.Client
}

// NewTopicsClient creates a new topics client.
func NewTopicsClient(httpClient *http.Client) *TopicsClient {
	return &TopicsClient{
		httpClient: httpClient,
	}
}

// Create implements discourse.TopicsClient.Create. The topic is posted as
// request.Username when set.
func (c *TopicsClient) Create(ctx context.Context, request *discourse.CreateTopicRequest) (*discourse.Result[*discourse.Post], error) {
	if request == nil {
		return discourse.Fail[*discourse.Post](discourse.ErrInvalidRequest.Error()), nil
	}

	err := request.Validate()
	if err != nil {
		return discourse.Fail[*discourse.Post](discourse.ValidationMessages(err)...), nil
	}

	form := url.Values{}
	form.Set("title", request.Title)
	form.Set("raw", request.Raw)
	form.Set("archetype", constants.ArchetypeRegular)

	if request.CategoryID > 0 {
		form.Set("category", strconv.FormatInt(request.CategoryID, 10))
	}

	return submitPost(ctx, c.httpClient, opCreateTopic, request.Title, form, request.Username)
}

// Latest implements discourse.TopicsClient.Latest. Topics are returned in
// the order the forum lists them.
func (c *TopicsClient) Latest(ctx context.Context) (*discourse.Result[[]discourse.TopicSummary], error) {
	query := url.Values{}
	query.Set(queryParamOrder, constants.OrderCreated)

	resp, err := c.httpClient.Get(ctx, constants.APIPathLatest, query)
	if err != nil {
		return nil, discourse.NewDomainError(opLatestTopics, subjectLatest, err)
	}

	if !resp.IsSuccess() {
		return failure[[]discourse.TopicSummary](resp), nil
	}

	var body struct {
		TopicList *struct {
			Topics []discourse.TopicSummary `json:"topics"`
		} `json:"topic_list"`
	}

	err = decode(resp, &body, opLatestTopics, subjectLatest)
	if err != nil {
		return nil, err
	}

	if body.TopicList == nil {
		return nil, unexpected(opLatestTopics, subjectLatest, nil)
	}

	topics := body.TopicList.Topics
	if topics == nil {
		topics = []discourse.TopicSummary{}
	}

	return discourse.OK(topics), nil
}

package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

const opCreateCategory = "could not create category"

// CategoriesClient implements discourse.CategoriesClient.
type CategoriesClient struct {
	httpClient *http.Client
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *http.Client) *CategoriesClient {
	return &CategoriesClient{
		httpClient: httpClient,
	}
}

// Create implements discourse.CategoriesClient.Create. An empty TextColor
// defaults to white.
func (c *CategoriesClient) Create(ctx context.Context, request *discourse.CreateCategoryRequest) (*discourse.Result[*discourse.Category], error) {
	if request == nil {
		return discourse.Fail[*discourse.Category](discourse.ErrInvalidRequest.Error()), nil
	}

	err := request.Validate()
	if err != nil {
		return discourse.Fail[*discourse.Category](discourse.ValidationMessages(err)...), nil
	}

	textColor := request.TextColor
	if textColor == "" {
		textColor = constants.DefaultTextColor
	}

	form := url.Values{}
	form.Set("name", request.Name)
	form.Set("color", request.Color)
	form.Set("text_color", textColor)

	resp, err := c.httpClient.Post(ctx, constants.APIPathCategories, form)
	if err != nil {
		return nil, discourse.NewDomainError(opCreateCategory, request.Name, err)
	}

	if !resp.IsSuccess() {
		return failure[*discourse.Category](resp), nil
	}

	var body struct {
		Category *discourse.Category `json:"category"`
	}

	err = decode(resp, &body, opCreateCategory, request.Name)
	if err != nil {
		return nil, err
	}

	if body.Category == nil {
		return nil, unexpected(opCreateCategory, request.Name, nil)
	}

	return discourse.OK(body.Category), nil
}

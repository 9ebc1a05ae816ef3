package client

import (
	"errors"

	"github.com/fivetwenty-io/discourse/internal/auth"
	"github.com/fivetwenty-io/discourse/internal/http"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the discourse.Client interface.
type Client struct {
	httpClient  *http.Client
	credentials *auth.Credentials
	baseURL     string
	logger      discourse.Logger

	// Resource clients
	users        *UsersClient
	categories   *CategoriesClient
	topics       *TopicsClient
	posts        *PostsClient
	siteSettings *SiteSettingsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *discourse.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithInsecureSkipVerify(true))
	}

	return httpOpts
}

// New creates a client for the forum at baseURL. Host normalisation and
// config validation are done by the caller.
func New(baseURL string, config *discourse.Config) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	if config == nil {
		return nil, discourse.ErrConfigRequired
	}

	apiUsername := config.APIUsername
	if apiUsername == "" {
		apiUsername = discourse.DefaultAPIUsername
	}

	credentials := auth.NewCredentials(config.APIKey, apiUsername)

	logger := config.Logger
	if logger == nil {
		logger = discourse.NopLogger()
	}

	client := &Client{
		httpClient:  http.NewClient(baseURL, credentials, createHTTPClientOptions(config)...),
		credentials: credentials,
		baseURL:     baseURL,
		logger:      logger,
	}

	client.initializeResourceClients(config.UnsuspendFailure)

	return client, nil
}

// initializeResourceClients initializes all resource clients.
func (c *Client) initializeResourceClients(policy discourse.UnsuspendFailurePolicy) {
	c.users = NewUsersClient(c.httpClient, c.logger, policy)
	c.categories = NewCategoriesClient(c.httpClient)
	c.topics = NewTopicsClient(c.httpClient)
	c.posts = NewPostsClient(c.httpClient)
	c.siteSettings = NewSiteSettingsClient(c.httpClient)
}

// BaseURL returns the forum URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIUsername returns the configured acting username.
func (c *Client) APIUsername() string {
	return c.credentials.Username()
}

// Resource client accessors

// Users implements discourse.Client.Users.
func (c *Client) Users() discourse.UsersClient {
	return c.users
}

// Categories implements discourse.Client.Categories.
func (c *Client) Categories() discourse.CategoriesClient {
	return c.categories
}

// Topics implements discourse.Client.Topics.
func (c *Client) Topics() discourse.TopicsClient {
	return c.topics
}

// Posts implements discourse.Client.Posts.
func (c *Client) Posts() discourse.PostsClient {
	return c.posts
}

// SiteSettings implements discourse.Client.SiteSettings.
func (c *Client) SiteSettings() discourse.SiteSettingsClient {
	return c.siteSettings
}

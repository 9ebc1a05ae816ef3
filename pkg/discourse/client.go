package discourse

import (
	"context"
	"time"
)

// DefaultAPIUsername is the acting username used when none is configured.
const DefaultAPIUsername = "system"

// MessageUnsuspendedViaCreation is the message returned when CreateUser finds
// an existing account and unsuspends it.
const MessageUnsuspendedViaCreation = "unsuspended via account creation"

// UsersClient wraps the user lifecycle endpoints.
type UsersClient interface {
	LookupIDByUsername(ctx context.Context, username string) (*Result[int64], error)
	GetByUsername(ctx context.Context, username string) (*Result[*User], error)
	Honeypot(ctx context.Context) (*Result[*Honeypot], error)
	Create(ctx context.Context, request *CreateUserRequest) (*Result[*CreateUserResult], error)
	ActivateByID(ctx context.Context, userID int64) (*Result[bool], error)
	ApproveByID(ctx context.Context, userID int64) (*Result[bool], error)
	SuspendByID(ctx context.Context, userID int64, request *SuspendRequest) (*Result[*Suspension], error)
	UnsuspendByID(ctx context.Context, userID int64) (*Result[*Suspension], error)
	DeleteByID(ctx context.Context, userID int64) (*Result[bool], error)
}

// CategoriesClient wraps the category endpoints.
type CategoriesClient interface {
	Create(ctx context.Context, request *CreateCategoryRequest) (*Result[*Category], error)
}

// TopicsClient wraps the topic endpoints.
type TopicsClient interface {
	Create(ctx context.Context, request *CreateTopicRequest) (*Result[*Post], error)
	Latest(ctx context.Context) (*Result[[]TopicSummary], error)
}

// PostsClient wraps the post endpoints.
type PostsClient interface {
	Create(ctx context.Context, request *CreatePostRequest) (*Result[*Post], error)
}

// SiteSettingsClient wraps the admin site settings endpoint.
type SiteSettingsClient interface {
	Change(ctx context.Context, name, value string) (*Result[*SiteSetting], error)
}

// Client provides access to all resource clients.
type Client interface {
	Users() UsersClient
	Categories() CategoriesClient
	Topics() TopicsClient
	Posts() PostsClient
	SiteSettings() SiteSettingsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// UnsuspendFailurePolicy decides how CreateUser reports an existing user
// whose unsuspend call did not succeed.
type UnsuspendFailurePolicy int

const (
	// UnsuspendFailureWarn returns Success=true with the failure as a warning
	// in Errors and no data.
	UnsuspendFailureWarn UnsuspendFailurePolicy = iota

	// UnsuspendFailureFail returns Success=false.
	UnsuspendFailureFail
)

// String implements fmt.Stringer.
func (p UnsuspendFailurePolicy) String() string {
	switch p {
	case UnsuspendFailureFail:
		return "fail"
	default:
		return "warn"
	}
}

// Config represents client configuration for building a Client.
//
// Host and APIKey are required. The base URL is built as
// "https://<Host>" unless InsecureHTTP is set; a Host that already carries
// an http:// or https:// scheme is used unchanged.
//
// Every request carries APIKey and APIUsername as the api_key and
// api_username query parameters.
type Config struct {
	// Host is the forum host name, e.g. "forum.example.com".
	Host string
	// InsecureHTTP selects plain http instead of https.
	InsecureHTTP bool
	// APIKey is the admin API key.
	APIKey string
	// APIUsername is the acting username. Defaults to DefaultAPIUsername.
	APIUsername string

	// HTTPTimeout bounds each request. Zero sets no timeout; deadlines then
	// come only from the caller's context.
	HTTPTimeout time.Duration
	// SkipTLSVerify disables certificate verification. Development only.
	SkipTLSVerify bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger

	// UnsuspendFailure selects how CreateUser reports a failed unsuspend of
	// an existing account.
	UnsuspendFailure UnsuspendFailurePolicy
}

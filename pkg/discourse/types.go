package discourse

import (
	"errors"
	"regexp"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// User represents the user object returned by /users/{username}.json.
type User struct {
	ID            int64      `json:"id"                       yaml:"id"`
	Username      string     `json:"username"                 yaml:"username"`
	Name          string     `json:"name,omitempty"           yaml:"name,omitempty"`
	Active        bool       `json:"active"                   yaml:"active"`
	Approved      bool       `json:"approved"                 yaml:"approved"`
	Admin         bool       `json:"admin"                    yaml:"admin"`
	Moderator     bool       `json:"moderator"                yaml:"moderator"`
	TrustLevel    int        `json:"trust_level"              yaml:"trust_level"`
	SuspendedTill *time.Time `json:"suspended_till,omitempty" yaml:"suspended_till,omitempty"`
	SuspendReason string     `json:"suspend_reason,omitempty" yaml:"suspend_reason,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
}

// IsSuspended reports whether the user is suspended at the given instant.
func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedTill != nil && u.SuspendedTill.After(now)
}

// Honeypot is the anti-spam challenge/value pair required by open registration.
type Honeypot struct {
	Challenge string `json:"challenge" yaml:"challenge"`
	Value     string `json:"value"     yaml:"value"`
}

// ReversedChallenge returns the challenge in reverse character order, which
// is what the registration endpoint expects to receive back. Challenges are
// ASCII hex, where this equals a byte-wise reversal; multibyte input is
// reversed by character so the result stays valid UTF-8.
func (h *Honeypot) ReversedChallenge() string {
	runes := []rune(h.Challenge)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// CreateUserRequest holds the fields needed to register a user.
type CreateUserRequest struct {
	Name     string `json:"name"     yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"-"`
}

// Validate checks the request before any network call is made.
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 60)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateUserResult is the data payload of a user creation.
type CreateUserResult struct {
	UserActive bool   `json:"user_active" yaml:"user_active"`
	UserID     int64  `json:"user_id"     yaml:"user_id"`
	Message    string `json:"message"     yaml:"message"`

	// Existing is set when the username was already registered and the
	// account was unsuspended instead of created.
	Existing bool `json:"-" yaml:"-"`
}

// SuspendRequest describes a suspension.
type SuspendRequest struct {
	Until  time.Time `json:"suspend_until" yaml:"suspend_until"`
	Reason string    `json:"reason"        yaml:"reason"`
}

// Validate checks the request before any network call is made.
func (r SuspendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Until, validation.Required),
		validation.Field(&r.Reason, validation.Required),
	)
}

// Suspension is the suspension state returned by suspend and unsuspend.
type Suspension struct {
	SuspendedTill *time.Time `json:"suspended_till"           yaml:"suspended_till"`
	SuspendedAt   *time.Time `json:"suspended_at,omitempty"   yaml:"suspended_at,omitempty"`
	SuspendReason string     `json:"suspend_reason,omitempty" yaml:"suspend_reason,omitempty"`
}

// Category represents a forum category.
type Category struct {
	ID        int64  `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Slug      string `json:"slug"       yaml:"slug"`
	Color     string `json:"color"      yaml:"color"`
	TextColor string `json:"text_color" yaml:"text_color"`
}

// CreateCategoryRequest holds the fields needed to create a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"       yaml:"name"`
	Color     string `json:"color"      yaml:"color"`
	TextColor string `json:"text_color" yaml:"text_color"`
}

// Validate checks the request before any network call is made.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Color, validation.Required, validation.Match(hexColor)),
		validation.Field(&r.TextColor, validation.Match(hexColor)),
	)
}

// Post represents a post as returned by /posts.json.
type Post struct {
	ID         int64      `json:"id"                   yaml:"id"`
	TopicID    int64      `json:"topic_id"             yaml:"topic_id"`
	TopicSlug  string     `json:"topic_slug,omitempty" yaml:"topic_slug,omitempty"`
	PostNumber int        `json:"post_number"          yaml:"post_number"`
	Username   string     `json:"username"             yaml:"username"`
	Raw        string     `json:"raw,omitempty"        yaml:"raw,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// CreateTopicRequest opens a new topic. Username, when set, overrides the
// acting username for this request only.
type CreateTopicRequest struct {
	Title      string `json:"title"    yaml:"title"`
	Raw        string `json:"raw"      yaml:"raw"`
	CategoryID int64  `json:"category" yaml:"category"`
	Username   string `json:"username" yaml:"username"`
}

// Validate checks the request before any network call is made.
func (r CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Raw, validation.Required),
		validation.Field(&r.CategoryID, validation.Min(int64(0))),
	)
}

// CreatePostRequest replies in an existing topic. Username, when set,
// overrides the acting username for this request only.
type CreatePostRequest struct {
	Raw        string `json:"raw"      yaml:"raw"`
	TopicID    int64  `json:"topic_id" yaml:"topic_id"`
	CategoryID int64  `json:"category" yaml:"category"`
	Username   string `json:"username" yaml:"username"`
}

// Validate checks the request before any network call is made.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Raw, validation.Required),
		validation.Field(&r.TopicID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.CategoryID, validation.Min(int64(0))),
	)
}

// TopicSummary is one entry of topic_list.topics.
type TopicSummary struct {
	ID           int64      `json:"id"                       yaml:"id"`
	Title        string     `json:"title"                    yaml:"title"`
	FancyTitle   string     `json:"fancy_title,omitempty"    yaml:"fancy_title,omitempty"`
	Slug         string     `json:"slug"                     yaml:"slug"`
	PostsCount   int        `json:"posts_count"              yaml:"posts_count"`
	ReplyCount   int        `json:"reply_count"              yaml:"reply_count"`
	Views        int        `json:"views"                    yaml:"views"`
	CategoryID   int64      `json:"category_id"              yaml:"category_id"`
	Pinned       bool       `json:"pinned"                   yaml:"pinned"`
	Closed       bool       `json:"closed"                   yaml:"closed"`
	Archived     bool       `json:"archived"                 yaml:"archived"`
	CreatedAt    *time.Time `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
	LastPostedAt *time.Time `json:"last_posted_at,omitempty" yaml:"last_posted_at,omitempty"`
}

// SiteSetting is a setting name and the value it was changed to.
type SiteSetting struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ValidationMessages flattens a validation error into envelope messages,
// ordered by field name.
func ValidationMessages(err error) []string {
	if err == nil {
		return []string{}
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+": "+fieldErrs[field].Error())
	}

	return messages
}

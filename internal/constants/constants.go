package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Timeouts. The library sets no request timeout of its own.
const (
	// DefaultCLITimeout bounds a single CLI command.
	DefaultCLITimeout = 60 * time.Second
)

// Authentication parameters sent on every request.
const (
	// QueryAPIKey carries the API key.
	QueryAPIKey = "api_key"

	// QueryAPIUsername carries the acting username.
	QueryAPIUsername = "api_username"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// HTTP headers and content types.
const (
	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "discourse-go-client"

	// ContentTypeForm is used for form-encoded bodies.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeJSON is used for JSON bodies.
	ContentTypeJSON = "application/json"
)

// API paths.
const (
	// APIPathUsers is the registration endpoint.
	APIPathUsers = "/users"

	// APIPathHoneypot returns the registration challenge.
	APIPathHoneypot = "/users/hp.json"

	// APIPathAdminUsers prefixes the admin user endpoints.
	APIPathAdminUsers = "/admin/users"

	// APIPathCategories creates categories.
	APIPathCategories = "/categories.json"

	// APIPathPosts creates topics and posts.
	APIPathPosts = "/posts.json"

	// APIPathLatest lists the latest topics.
	APIPathLatest = "/latest.json"

	// APIPathSiteSettings prefixes the site settings endpoint.
	APIPathSiteSettings = "/admin/site_settings"
)

// Request defaults.
const (
	// DefaultTextColor is the category text color used when none is given.
	DefaultTextColor = "FFFFFF"

	// ArchetypeRegular is the archetype of a regular topic.
	ArchetypeRegular = "regular"

	// OrderCreated orders topic lists by creation time.
	OrderCreated = "created"

	// SuspendUntilLayout is the layout of suspend_until.
	SuspendUntilLayout = time.RFC3339

	// DefaultSuspendDuration is used by the CLI when --until is omitted.
	DefaultSuspendDuration = 100 * 365 * 24 * time.Hour
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON and YAML indentation.
	JSONIndentSize = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// DateTimeLayout is used when printing timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"

	// TitleDisplayLength is the length for displaying topic titles.
	TitleDisplayLength = 60
)

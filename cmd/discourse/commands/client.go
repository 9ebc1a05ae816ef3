package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/discourse/internal/constants"
	"github.com/fivetwenty-io/discourse/pkg/accounts"
	"github.com/fivetwenty-io/discourse/pkg/discourse"
	"github.com/fivetwenty-io/discourse/pkg/discourseclient"
)

// newLogger builds the CLI logger. --verbose enables request logging.
func newLogger() discourse.Logger {
	level := hclog.Warn
	if viper.GetBool("verbose") {
		level = hclog.Debug
	}

	return discourse.NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "discourse",
		Level:  level,
		Output: os.Stderr,
	}))
}

// buildClientConfig assembles the library config from flags, environment
// and config file.
func buildClientConfig(logger discourse.Logger) (*discourse.Config, error) {
	host := viper.GetString("host")
	if host == "" {
		return nil, constants.ErrNoHostConfigured
	}

	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}

	return &discourse.Config{
		Host:         host,
		InsecureHTTP: viper.GetBool("insecure_http"),
		APIKey:       apiKey,
		APIUsername:  viper.GetString("api_username"),
		Debug:        viper.GetBool("verbose"),
		Logger:       logger,
	}, nil
}

// resolveAPIKey returns the configured key, prompting for it without echo
// when none is configured and stdin is a terminal.
func resolveAPIKey() (string, error) {
	apiKey := viper.GetString("api_key")
	if apiKey != "" {
		return apiKey, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", constants.ErrNoAPIKeyConfigured
	}

	fmt.Fprint(os.Stderr, "API key: ")

	byteKey, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	apiKey = strings.TrimSpace(string(byteKey))
	if apiKey == "" {
		return "", constants.ErrNoAPIKeyConfigured
	}

	return apiKey, nil
}

// CreateClient creates an API client from the current configuration.
func CreateClient() (discourse.Client, error) {
	config, err := buildClientConfig(newLogger())
	if err != nil {
		return nil, err
	}

	client, err := discourseclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// createAccountsService creates the account helper service alongside a client.
func createAccountsService() (*accounts.Service, discourse.Client, error) {
	logger := newLogger()

	config, err := buildClientConfig(logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := discourseclient.New(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return accounts.NewService(client.Users(), logger), client, nil
}

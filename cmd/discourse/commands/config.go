package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/discourse/internal/constants"
)

// ConfigDirName is the directory under $HOME holding config.yml.
const ConfigDirName = ".discourse"

const configFileName = "config.yml"

// Config represents the CLI configuration file.
type Config struct {
	Host         string `json:"host,omitempty"         yaml:"host,omitempty"`
	APIKey       string `json:"api_key,omitempty"      yaml:"api_key,omitempty"`
	APIUsername  string `json:"api_username,omitempty" yaml:"api_username,omitempty"`
	InsecureHTTP bool   `json:"insecure_http"          yaml:"insecure_http"`
	Output       string `json:"output,omitempty"       yaml:"output,omitempty"`
}

// configKeys lists the keys accepted by config set and unset.
var configKeys = []string{"host", "api_key", "api_username", "insecure_http", "output"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the forum host, API credentials and output settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration. The API key is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskSecret(config.APIKey)

			handled, err := writeStructured(config)
			if handled {
				return err
			}

			return renderProperties([][]string{
				{"Host", valueOrNA(config.Host)},
				{"API Key", config.APIKey},
				{"API Username", valueOrNA(config.APIUsername)},
				{"Insecure HTTP", formatBool(config.InsecureHTTP)},
				{"Output", valueOrNA(config.Output)},
				{"Config File", valueOrNA(viper.ConfigFileUsed())},
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: host, api_key, api_username, insecure_http, output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			value := args[1]
			if args[0] == "api_key" {
				value = maskSecret(value)
			}

			fmt.Printf("Set %s to %s\n", args[0], value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", args[0])

			return nil
		},
	}
}

// loadConfig reads the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		Host:         viper.GetString("host"),
		APIKey:       viper.GetString("api_key"),
		APIUsername:  viper.GetString("api_username"),
		InsecureHTTP: viper.GetBool("insecure_http"),
		Output:       viper.GetString("output"),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "host":
		config.Host = value
	case "api_key":
		config.APIKey = value
	case "api_username":
		config.APIUsername = value
	case "insecure_http":
		insecure, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for insecure_http %q: %w", value, err)
		}

		config.InsecureHTTP = insecure
	case "output":
		err := ValidateOutputFormat(value)
		if err != nil {
			return err
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", constants.ErrUnknownConfigKey, key, configKeys)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "host":
		config.Host = ""
	case "api_key":
		config.APIKey = ""
	case "api_username":
		config.APIUsername = ""
	case "insecure_http":
		config.InsecureHTTP = false
	case "output":
		config.Output = ""
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", constants.ErrUnknownConfigKey, key, configKeys)
	}

	return nil
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ConfigDirName, configFileName), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	return writeConfigFile(configFile, config)
}

func writeConfigFile(configFile string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

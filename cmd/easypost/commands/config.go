package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// ConfigDirName is the directory under the user's home holding config.yml.
const ConfigDirName = ".easypost"

// Config represents the CLI configuration file.
type Config struct {
	APIKey   string `json:"api_key,omitempty"   yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"  yaml:"base_url,omitempty"`
	BetaURL  string `json:"beta_url,omitempty"  yaml:"beta_url,omitempty"`
	Output   string `json:"output,omitempty"    yaml:"output,omitempty"`
	RetryMax *int   `json:"retry_max,omitempty" yaml:"retry_max,omitempty"`
	Cache    string `json:"cache,omitempty"     yaml:"cache,omitempty"`
	NATSURL  string `json:"nats_url,omitempty"  yaml:"nats_url,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the EasyPost CLI config file",
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
		Long:  "Display the stored configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if config.APIKey != "" {
				config.APIKey = maskSecret(config.APIKey)
			}

			return render(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of api_key, base_url, beta_url, output, retry_max, cache or nats_url",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			writeLine(cmd.OutOrStdout(), "Set %s", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			writeLine(cmd.OutOrStdout(), "Unset %s", key)

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPIKey:
		config.APIKey = value
	case keyBaseURL:
		config.BaseURL = value
	case keyBetaURL:
		config.BetaURL = value
	case keyOutput:
		switch value {
		case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, value)
		}
	case keyRetryMax:
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidRetryMax, value)
		}

		config.RetryMax = &retries
	case keyCache:
		cacheType, err := parseCacheType(value)
		if err != nil {
			return err
		}

		config.Cache = string(cacheType)
	case keyNATSURL:
		config.NATSURL = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case keyAPIKey:
		config.APIKey = ""
	case keyBaseURL:
		config.BaseURL = ""
	case keyBetaURL:
		config.BetaURL = ""
	case keyOutput:
		config.Output = ""
	case keyRetryMax:
		config.RetryMax = nil
	case keyCache:
		config.Cache = ""
	case keyNATSURL:
		config.NATSURL = ""
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	retryMax := NotAvailable
	if config.RetryMax != nil {
		retryMax = strconv.Itoa(*config.RetryMax)
	}

	return renderProperties(w, [][]string{
		{"Config File", configFilePath()},
		{"API Key", orNA(config.APIKey)},
		{"Base URL", orNA(config.BaseURL)},
		{"Beta URL", orNA(config.BetaURL)},
		{"Output", orNA(config.Output)},
		{"Retry Max", retryMax},
		{"Cache", orNA(config.Cache)},
		{"NATS URL", orNA(config.NATSURL)},
	})
}

// configFilePath returns --config, the file viper loaded, or ~/.easypost/config.yml.
func configFilePath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDirName, "config.yml")
	}

	return filepath.Join(home, ConfigDirName, "config.yml")
}

// loadConfig reads the config file. A missing file is an empty config.
func loadConfig() (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(configFilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile := configFilePath()

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

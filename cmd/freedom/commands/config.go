package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/atlasground/freedom/internal/auth"
	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

// Config is the persisted CLI configuration.
type Config struct {
	Env     string `json:"env,omitempty"      yaml:"env,omitempty"`
	Key     string `json:"key,omitempty"      yaml:"key,omitempty"`
	Secret  string `json:"secret,omitempty"   yaml:"secret,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	Cache   bool   `json:"cache,omitempty"    yaml:"cache,omitempty"`
}

// configKeys are the keys "config set" accepts.
var configKeys = []string{keyEnv, keyKey, keySecret, keyBaseURL, keyOutput, keyCache}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the Freedom CLI configuration stored in ~/.freedom/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetCredentialsCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the secret masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Secret = maskedSecret(config.Secret)

			return render(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return renderProperties(w, [][2]string{
					{"Environment", orNA(config.Env)},
					{"Key", orNA(config.Key)},
					{"Secret", orNA(config.Secret)},
					{"Base URL", orNA(config.BaseURL)},
					{"Output", orNA(config.Output)},
					{"Cache", fmt.Sprintf("%t", config.Cache)},
					{"Config file", orNA(viper.ConfigFileUsed())},
				})
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigSetCredentialsCommand() *cobra.Command {
	var (
		env string
		key string
	)

	cmd := &cobra.Command{
		Use:   "set-credentials",
		Short: "Store the API key and secret",
		Long:  "Store the API key and prompt for the secret without echoing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if env != "" {
				err := setConfigValue(config, keyEnv, env)
				if err != nil {
					return err
				}
			}

			reader := bufio.NewReader(cmd.InOrStdin())

			if key == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "API key: ")

				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read key: %w", err)
				}

				key = strings.TrimSpace(line)
			}

			secret, err := readSecret(cmd, reader)
			if err != nil {
				return err
			}

			config.Key = key
			config.Secret = secret

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved for key %s\n", key)

			return nil
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "environment to store with the credentials")
	cmd.Flags().StringVar(&key, "api-key", "", "API key (prompted for when empty)")

	return cmd
}

// readSecret reads the secret without echo on a terminal, or a line otherwise.
func readSecret(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "API secret: ")

	var secret string

	if term.IsTerminal(int(syscall.Stdin)) {
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		secret = string(bytePassword)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		secret = line
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", constants.ErrEmptySecret
	}

	return secret, nil
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyEnv:
		env, err := freedom.ParseEnvironment(value)
		if err != nil {
			return fmt.Errorf("%w: %w", constants.ErrUnknownEnvironment, err)
		}

		config.Env = string(env)
	case keyKey:
		config.Key = value
	case keySecret:
		if value == "" {
			return constants.ErrEmptySecret
		}

		config.Secret = value
	case keyBaseURL, "base-url":
		config.BaseURL = value
	case keyOutput:
		config.Output = value
	case keyCache:
		config.Cache = value == "true" || value == "1" || value == "yes"
	default:
		return fmt.Errorf("%w: %q", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func loadConfig() *Config {
	return &Config{
		Env:     viper.GetString(keyEnv),
		Key:     viper.GetString(keyKey),
		Secret:  viper.GetString(keySecret),
		BaseURL: viper.GetString(keyBaseURL),
		Output:  viper.GetString(keyOutput),
		Cache:   viper.GetBool(keyCache),
	}
}

func maskedSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return auth.MaskSecret(secret)
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".freedom", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
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

// Package freedomclient provides the main entry point for creating Freedom API clients
package freedomclient

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/atlasground/freedom/internal/client"
	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

// New creates a direct Freedom API client. Every call goes to the API.
func New(config *freedom.Config) (freedom.API, error) {
	direct, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return direct, nil
}

// NewDefault creates the default backend: the caching client, or the direct
// client when built with the nocache tag.
func NewDefault(config *freedom.Config) (freedom.API, error) {
	return newDefault(config)
}

// NewFromEnv creates the default backend from ATLAS_ENV, ATLAS_KEY and
// ATLAS_SECRET.
func NewFromEnv() (freedom.API, error) {
	config, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return NewDefault(config)
}

// NewWithCredentials creates the default backend for env with key and secret.
func NewWithCredentials(env freedom.Environment, key, secret string) (freedom.API, error) {
	return NewDefault(&freedom.Config{
		Environment: env,
		Key:         key,
		Secret:      secret,
	})
}

// ConfigFromEnv reads the configuration from ATLAS_* environment variables.
// ATLAS_ENV defaults to test.
func ConfigFromEnv() (*freedom.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	env, err := freedom.ParseEnvironment(v.GetString(constants.EnvKeyEnvironment))
	if err != nil {
		return nil, err
	}

	config := &freedom.Config{
		Environment: env,
		Key:         v.GetString(constants.EnvKeyKey),
		Secret:      v.GetString(constants.EnvKeySecret),
	}

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("reading %s_* environment: %w", constants.EnvPrefix, err)
	}

	return config, nil
}

//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Env         string
	Key         string
	Secret      string
	FreedomPath string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Env:         os.Getenv("ATLAS_ENV"),
		Key:         os.Getenv("ATLAS_KEY"),
		Secret:      os.Getenv("ATLAS_SECRET"),
		FreedomPath: getFreedomPath(),
		Verbose:     os.Getenv("FREEDOM_VERBOSE") == "true",
	}
}

// getFreedomPath determines the path to the freedom binary
func getFreedomPath() string {
	if path := os.Getenv("FREEDOM_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../freedom",
		"./freedom",
		"../freedom",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "freedom"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Key == "" || config.Secret == "" {
		t.Skip("ATLAS_KEY or ATLAS_SECRET not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.FreedomPath); err != nil {
		t.Skipf("freedom binary not found at %s, skipping integration test", config.FreedomPath)
	}
}

// CommandRunner runs the freedom binary
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a freedom command and returns output. Credentials are passed
// through the environment.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.FreedomPath, args...) // #nosec G204
	cmd.Env = append(os.Environ(),
		"ATLAS_ENV="+runner.config.Env,
		"ATLAS_KEY="+runner.config.Key,
		"ATLAS_SECRET="+runner.config.Secret,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.FreedomPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var decoded any
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Errorf("Output is not valid YAML: %v\n%s", err, output)
	}
}

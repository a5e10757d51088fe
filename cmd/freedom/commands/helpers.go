package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-hclog"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
	"github.com/atlasground/freedom/pkg/freedomclient"
)

// Viper keys shared by the commands.
const (
	keyConfig  = "config"
	keyEnv     = "env"
	keyKey     = "key"
	keySecret  = "secret"
	keyBaseURL = "base_url"
	keyOutput  = "output"
	keyCache   = "cache"
	keyDebug   = "debug"

	defaultJSONIndent = 2
	dateLayout        = "2006-01-02 15:04"
)

// AddGlobalFlags registers the persistent flags and binds them to viper.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "config file (default is $HOME/.freedom/config.yml)")
	flags.StringP(keyEnv, "e", "", "environment: test or prod (default test)")
	flags.String(keyKey, "", "API key")
	flags.String(keySecret, "", "API secret")
	flags.String("base-url", "", "override the API entry point")
	flags.StringP(keyOutput, "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.Bool(keyCache, false, "memoize fetched resources for the duration of the command")
	flags.BoolP(keyDebug, "d", false, "log HTTP traffic and cache statistics to stderr")

	_ = viper.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	_ = viper.BindPFlag(keyEnv, flags.Lookup(keyEnv))
	_ = viper.BindPFlag(keyKey, flags.Lookup(keyKey))
	_ = viper.BindPFlag(keySecret, flags.Lookup(keySecret))
	_ = viper.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup(keyOutput))
	_ = viper.BindPFlag(keyCache, flags.Lookup(keyCache))
	_ = viper.BindPFlag(keyDebug, flags.Lookup(keyDebug))
}

// newLogger returns an hclog logger on stderr, at Debug with --debug.
func newLogger() freedom.Logger {
	level := hclog.Warn
	if viper.GetBool(keyDebug) {
		level = hclog.Debug
	}

	return freedom.NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "freedom",
		Level:  level,
		Output: os.Stderr,
	}))
}

// clientConfig builds the client configuration from flags, env and config file.
func clientConfig(logger freedom.Logger) (*freedom.Config, error) {
	env, err := freedom.ParseEnvironment(viper.GetString(keyEnv))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrUnknownEnvironment, err)
	}

	config := &freedom.Config{
		Environment: env,
		Key:         viper.GetString(keyKey),
		Secret:      viper.GetString(keySecret),
		BaseURL:     viper.GetString(keyBaseURL),
		Debug:       viper.GetBool(keyDebug),
		Logger:      logger,
	}

	if config.Key == "" || config.Secret == "" {
		return nil, constants.ErrNoCredentials
	}

	return config, nil
}

// CreateClient creates the client selected by --cache.
func CreateClient(logger freedom.Logger) (freedom.API, error) {
	config, err := clientConfig(logger)
	if err != nil {
		return nil, err
	}

	if !viper.GetBool(keyCache) {
		return freedomclient.New(config)
	}

	if !freedomclient.CachingEnabled {
		return nil, constants.ErrCachingMissing
	}

	return freedomclient.NewDefault(config)
}

// withClient runs fn with a fresh client, then reports cache statistics at
// Debug and closes the cache.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, api freedom.API) error) error {
	logger := newLogger()

	api, err := CreateClient(logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err = fn(ctx, api)

	if cached, ok := api.(freedom.CachingAPI); ok {
		stats := cached.Stats()
		logger.Debug("Cache stats", map[string]interface{}{
			"hits":     stats.Hits,
			"misses":   stats.Misses,
			"size":     stats.Size,
			"hit_rate": stats.GetHitRate(),
		})

		closeErr := cached.Close()
		if closeErr != nil {
			logger.Warn("Failed to close cache", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}

	return err
}

// ParseID parses a positive resource id.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, s)
	}

	return id, nil
}

// ParseIDs parses every argument as a resource id.
func ParseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))

	for _, arg := range args {
		id, err := ParseID(arg)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// ParseTime accepts most common date layouts ("2024-06-01",
// "06/01/2024 14:00", RFC 3339, ...). Times without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	parsed, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}

	return parsed, nil
}

// ParseWindow parses --start and --end.
func ParseWindow(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, constants.ErrStartEndRequired
	}

	from, err := ParseTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := ParseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, constants.ErrEndBeforeStart
	}

	return from, to, nil
}

// collect drains seq, stopping after limit records when limit is positive.
func collect[T any](seq freedom.Seq[T], limit int) ([]T, error) {
	var out []T

	for item, err := range seq {
		if err != nil {
			return out, err
		}

		out = append(out, item.IntoInner())
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}

// outputFormat returns the selected --output format.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString(keyOutput))
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrUnknownFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for the table format.
func render[T any](w io.Writer, data T, table func(w io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	default:
		return table(w)
	}
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderTable writes rows under header.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(toAny(header)...)

	for _, row := range rows {
		_ = table.Append(toAny(row)...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties writes a two-column property table.
func renderProperties(w io.Writer, properties [][2]string) error {
	rows := make([][]string, 0, len(properties))
	for _, property := range properties {
		rows = append(rows, []string{property[0], property[1]})
	}

	return renderTable(w, []string{"Property", "Value"}, rows)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

// idOf returns the id of a record for display.
func idOf(record interface{ ID() (int, error) }) string {
	id, err := record.ID()
	if err != nil {
		return constants.NotAvailable
	}

	return strconv.Itoa(id)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.UTC().Format(dateLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return formatTime(*t)
}

func orNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

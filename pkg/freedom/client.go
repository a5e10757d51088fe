package freedom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atlasground/freedom/internal/constants"
)

// ResourceClient is the operation family every resource kind supports.
type ResourceClient[T, R any] interface {
	Get(ctx context.Context, id int) (Container[T], error)
	List(ctx context.Context, params *QueryParams) Seq[T]
	// ListLinked lists the collection behind a relation href, such as a task
	// request's targetBands link.
	ListLinked(ctx context.Context, href string) Seq[T]
	// GetHref fetches the resource behind an href that need not carry an id,
	// such as the association link ".../requests/42/site". It is never cached.
	GetHref(ctx context.Context, href string) (Container[T], error)
	Create(ctx context.Context, payload *R) (Container[T], error)
	Update(ctx context.Context, id int, payload *R) (Container[T], error)
	Delete(ctx context.Context, id int) error
}

// AccountsClient defines operations for accounts.
type AccountsClient interface {
	ResourceClient[Account, AccountPayload]
	GetByName(ctx context.Context, name string) (Container[Account], error)
}

// BandsClient defines operations for satellite bands.
type BandsClient interface {
	ResourceClient[Band, BandPayload]
	GetByName(ctx context.Context, name string) (Container[Band], error)
	ListByAccountName(ctx context.Context, accountName string) Seq[Band]
}

// SatellitesClient defines operations for satellites.
type SatellitesClient interface {
	ResourceClient[Satellite, SatellitePayload]
	GetByName(ctx context.Context, name string) (Container[Satellite], error)
}

// SatelliteConfigurationsClient defines operations for satellite configurations.
type SatelliteConfigurationsClient interface {
	ResourceClient[SatelliteConfiguration, SatelliteConfigurationPayload]
	GetByName(ctx context.Context, name string) (Container[SatelliteConfiguration], error)
	ListByAccountName(ctx context.Context, accountName string) Seq[SatelliteConfiguration]
}

// SitesClient defines operations for sites.
type SitesClient interface {
	ResourceClient[Site, SitePayload]
	GetByName(ctx context.Context, name string) (Container[Site], error)
}

// SiteConfigurationsClient defines operations for site configurations.
type SiteConfigurationsClient interface {
	ResourceClient[SiteConfiguration, SiteConfigurationPayload]
	GetByName(ctx context.Context, name string) (Container[SiteConfiguration], error)
}

// TaskRequestsClient defines operations for task requests.
type TaskRequestsClient interface {
	ResourceClient[TaskRequest, TaskRequestPayload]
	ListBySatelliteName(ctx context.Context, satelliteName string) Seq[TaskRequest]
	ListByStatus(ctx context.Context, status TaskStatus) Seq[TaskRequest]
	ListByTargetDateBetween(ctx context.Context, start, end time.Time) Seq[TaskRequest]
	ListUpcomingToday(ctx context.Context) Seq[TaskRequest]
	ListPassedToday(ctx context.Context) Seq[TaskRequest]
	ListByAccountAndTargetDateBetween(ctx context.Context, accountURI string, start, end time.Time) Seq[TaskRequest]
	// ListByAccountUpcomingToday lists today's upcoming requests of the caller's account.
	ListByAccountUpcomingToday(ctx context.Context) Seq[TaskRequest]
	// ListByConfiguration lists the requests of a site configuration, oldest first.
	ListByConfiguration(ctx context.Context, configurationURI string) Seq[TaskRequest]
	ListByConfigurationAndSatelliteNamesAndTargetDateBetween(
		ctx context.Context, configurationURI string, satelliteNames []string, start, end time.Time,
	) Seq[TaskRequest]
	ListByConfigurationAndTargetDateBetween(ctx context.Context, configurationURI string, start, end time.Time) Seq[TaskRequest]
	ListByIDs(ctx context.Context, ids []int) Seq[TaskRequest]
	ListByOverlappingPublic(ctx context.Context, start, end time.Time) Seq[TaskRequest]
	ListBySatelliteNameAndTargetDateBetween(ctx context.Context, satelliteName string, start, end time.Time) Seq[TaskRequest]
	ListByStatusAndAccountAndTargetDateBetween(
		ctx context.Context, status TaskStatus, accountURI string, start, end time.Time,
	) Seq[TaskRequest]
	ListByTypeAndTargetDateBetween(ctx context.Context, taskType TaskType, start, end time.Time) Seq[TaskRequest]
}

// TasksClient defines operations for tasks.
type TasksClient interface {
	ResourceClient[Task, TaskPayload]
	ListByPassWindow(ctx context.Context, start, end time.Time) Seq[Task]
	ListUpcomingToday(ctx context.Context) Seq[Task]
	ListPassedToday(ctx context.Context) Seq[Task]
	// ListByPassOverlapping differs from ListByPassWindow in that passes only
	// partly inside the window are included.
	ListByPassOverlapping(ctx context.Context, start, end time.Time) Seq[Task]
	ListByAccountAndPassOverlapping(ctx context.Context, accountURI string, start, end time.Time) Seq[Task]
	ListByAccountAndSatelliteAndBandAndPassOverlapping(
		ctx context.Context, accountURI, satelliteConfigurationURI, band string, start, end time.Time,
	) Seq[Task]
	ListByAccountAndSiteConfigurationAndBandAndPassOverlapping(
		ctx context.Context, accountURI, siteConfigurationURI, band string, start, end time.Time,
	) Seq[Task]
	// GetAzEl fetches the pointing track behind a task's azel link.
	GetAzEl(ctx context.Context, href string) (*AzEl, error)
	DownloadFile(ctx context.Context, taskID int, name string) ([]byte, error)
}

// UsersClient defines operations for users.
type UsersClient interface {
	ResourceClient[User, UserPayload]
}

// OverridesClient defines operations for overrides.
type OverridesClient interface {
	ResourceClient[Override, OverridePayload]
}

// TokensClient issues FPS tokens.
type TokensClient interface {
	NewBySatellite(ctx context.Context, bandID, satelliteID int) (string, error)
	NewBySiteConfiguration(ctx context.Context, bandID, siteConfigurationID int) (string, error)
}

// GatewayLicensesClient manages Freedom Gateway licenses.
type GatewayLicensesClient interface {
	List(ctx context.Context) ([]GatewayLicense, error)
	Get(ctx context.Context, id int) (*GatewayLicense, error)
	Verify(ctx context.Context, licenseKey string) (*GatewayLicenseVerification, error)
	Regenerate(ctx context.Context, id int) (*GatewayLicense, error)
}

// BundlesClient reads FPS task bundles. These are meant for ground software
// rather than customers.
type BundlesClient interface {
	ListOverlapping(ctx context.Context, start, end time.Time) ([]TaskBundle, error)
}

// API is implemented by both the direct and the caching client.
type API interface {
	ResourceURLer

	Accounts() AccountsClient
	Bands() BandsClient
	Satellites() SatellitesClient
	SatelliteConfigurations() SatelliteConfigurationsClient
	Sites() SitesClient
	SiteConfigurations() SiteConfigurationsClient
	TaskRequests() TaskRequestsClient
	Tasks() TasksClient
	Users() UsersClient
	Overrides() OverridesClient
	Tokens() TokensClient
	GatewayLicenses() GatewayLicensesClient
	Bundles() BundlesClient

	// BaseURL returns the API entry point, always with a trailing slash.
	BaseURL() string
}

// CachingAPI is an API that memoizes fetch-by-id results.
type CachingAPI interface {
	API

	// Invalidate drops the cached entry for one resource.
	Invalidate(kind Kind, id int)
	// InvalidateAll drops every cached entry.
	InvalidateAll()
	// Refresh refetches one resource and replaces its entry. What happens
	// to the entry when the fetch fails is set by CacheOptions.ClearOnRefreshFailure.
	Refresh(ctx context.Context, kind Kind, id int) error
	Stats() CacheStats
	// Close releases the second-level cache, such as a NATS connection the
	// client opened itself.
	Close() error
}

// Environment selects the Freedom deployment.
type Environment string

const (
	EnvironmentTest Environment = "test"
	EnvironmentProd Environment = "prod"
)

// ParseEnvironment accepts "test" or "prod" in any case.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case EnvironmentTest, "":
		return EnvironmentTest, nil
	case EnvironmentProd, "production":
		return EnvironmentProd, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnv, s)
	}
}

// Entrypoint returns the base URL of the environment.
func (e Environment) Entrypoint() string {
	if e == EnvironmentProd {
		return constants.ProdEntrypoint
	}

	return constants.TestEntrypoint
}

// Config represents client configuration.
//
// Key and Secret are sent as HTTP basic credentials on every request.
// BaseURL overrides the environment's entry point and is mostly useful
// against a local mock server. Per-request timeouts should be controlled via
// the context passed to client methods; retry behavior is tuned via
// RetryMax/RetryWaitMin/RetryWaitMax.
type Config struct {
	Environment Environment
	Key         string
	Secret      string
	BaseURL     string

	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). If 0, a sensible default is used by the client.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug     bool
	Logger    Logger
	UserAgent string
	// Headers are added to every request.
	Headers map[string]string

	// Cache configures the caching client. It is ignored by the direct client.
	Cache *CacheConfig
}

// Entrypoint returns the base URL the client talks to, with a trailing slash.
func (c *Config) Entrypoint() string {
	base := c.BaseURL
	if base == "" {
		base = c.Environment.Entrypoint()
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Key == "" || c.Secret == "" {
		return ErrCredentials
	}

	_, err := ParseEnvironment(string(c.Environment))
	if err != nil {
		return err
	}

	return nil
}

package caching

import (
	"context"
	"time"

	"github.com/atlasground/freedom/pkg/freedom"
)

type accountsClient struct {
	*resourceClient[freedom.Account, freedom.AccountPayload]
	inner freedom.AccountsClient
}

func (c *accountsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Account], error) {
	return c.inner.GetByName(ctx, name)
}

type bandsClient struct {
	*resourceClient[freedom.Band, freedom.BandPayload]
	inner freedom.BandsClient
}

func (c *bandsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Band], error) {
	return c.inner.GetByName(ctx, name)
}

func (c *bandsClient) ListByAccountName(ctx context.Context, accountName string) freedom.Seq[freedom.Band] {
	return c.inner.ListByAccountName(ctx, accountName)
}

type satellitesClient struct {
	*resourceClient[freedom.Satellite, freedom.SatellitePayload]
	inner freedom.SatellitesClient
}

func (c *satellitesClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Satellite], error) {
	return c.inner.GetByName(ctx, name)
}

type satelliteConfigurationsClient struct {
	*resourceClient[freedom.SatelliteConfiguration, freedom.SatelliteConfigurationPayload]
	inner freedom.SatelliteConfigurationsClient
}

func (c *satelliteConfigurationsClient) GetByName(
	ctx context.Context, name string,
) (freedom.Container[freedom.SatelliteConfiguration], error) {
	return c.inner.GetByName(ctx, name)
}

func (c *satelliteConfigurationsClient) ListByAccountName(
	ctx context.Context, accountName string,
) freedom.Seq[freedom.SatelliteConfiguration] {
	return c.inner.ListByAccountName(ctx, accountName)
}

type sitesClient struct {
	*resourceClient[freedom.Site, freedom.SitePayload]
	inner freedom.SitesClient
}

func (c *sitesClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Site], error) {
	return c.inner.GetByName(ctx, name)
}

type siteConfigurationsClient struct {
	*resourceClient[freedom.SiteConfiguration, freedom.SiteConfigurationPayload]
	inner freedom.SiteConfigurationsClient
}

func (c *siteConfigurationsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.SiteConfiguration], error) {
	return c.inner.GetByName(ctx, name)
}

type taskRequestsClient struct {
	*resourceClient[freedom.TaskRequest, freedom.TaskRequestPayload]
	inner freedom.TaskRequestsClient
}

func (c *taskRequestsClient) ListBySatelliteName(ctx context.Context, satelliteName string) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListBySatelliteName(ctx, satelliteName)
}

func (c *taskRequestsClient) ListByStatus(ctx context.Context, status freedom.TaskStatus) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByStatus(ctx, status)
}

func (c *taskRequestsClient) ListByTargetDateBetween(ctx context.Context, start, end time.Time) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByTargetDateBetween(ctx, start, end)
}

func (c *taskRequestsClient) ListUpcomingToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListUpcomingToday(ctx)
}

func (c *taskRequestsClient) ListPassedToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListPassedToday(ctx)
}

func (c *taskRequestsClient) ListByAccountAndTargetDateBetween(
	ctx context.Context, accountURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByAccountAndTargetDateBetween(ctx, accountURI, start, end)
}

func (c *taskRequestsClient) ListByAccountUpcomingToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByAccountUpcomingToday(ctx)
}

func (c *taskRequestsClient) ListByConfiguration(ctx context.Context, configurationURI string) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByConfiguration(ctx, configurationURI)
}

func (c *taskRequestsClient) ListByConfigurationAndSatelliteNamesAndTargetDateBetween(
	ctx context.Context, configurationURI string, satelliteNames []string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByConfigurationAndSatelliteNamesAndTargetDateBetween(ctx, configurationURI, satelliteNames, start, end)
}

func (c *taskRequestsClient) ListByConfigurationAndTargetDateBetween(
	ctx context.Context, configurationURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByConfigurationAndTargetDateBetween(ctx, configurationURI, start, end)
}

func (c *taskRequestsClient) ListByIDs(ctx context.Context, ids []int) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByIDs(ctx, ids)
}

func (c *taskRequestsClient) ListByOverlappingPublic(ctx context.Context, start, end time.Time) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByOverlappingPublic(ctx, start, end)
}

func (c *taskRequestsClient) ListBySatelliteNameAndTargetDateBetween(
	ctx context.Context, satelliteName string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListBySatelliteNameAndTargetDateBetween(ctx, satelliteName, start, end)
}

func (c *taskRequestsClient) ListByStatusAndAccountAndTargetDateBetween(
	ctx context.Context, status freedom.TaskStatus, accountURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByStatusAndAccountAndTargetDateBetween(ctx, status, accountURI, start, end)
}

func (c *taskRequestsClient) ListByTypeAndTargetDateBetween(
	ctx context.Context, taskType freedom.TaskType, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	return c.inner.ListByTypeAndTargetDateBetween(ctx, taskType, start, end)
}

type tasksClient struct {
	*resourceClient[freedom.Task, freedom.TaskPayload]
	inner freedom.TasksClient
}

func (c *tasksClient) ListByPassWindow(ctx context.Context, start, end time.Time) freedom.Seq[freedom.Task] {
	return c.inner.ListByPassWindow(ctx, start, end)
}

func (c *tasksClient) ListUpcomingToday(ctx context.Context) freedom.Seq[freedom.Task] {
	return c.inner.ListUpcomingToday(ctx)
}

func (c *tasksClient) ListPassedToday(ctx context.Context) freedom.Seq[freedom.Task] {
	return c.inner.ListPassedToday(ctx)
}

func (c *tasksClient) ListByPassOverlapping(ctx context.Context, start, end time.Time) freedom.Seq[freedom.Task] {
	return c.inner.ListByPassOverlapping(ctx, start, end)
}

func (c *tasksClient) ListByAccountAndPassOverlapping(
	ctx context.Context, accountURI string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	return c.inner.ListByAccountAndPassOverlapping(ctx, accountURI, start, end)
}

func (c *tasksClient) ListByAccountAndSatelliteAndBandAndPassOverlapping(
	ctx context.Context, accountURI, satelliteConfigurationURI, band string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	return c.inner.ListByAccountAndSatelliteAndBandAndPassOverlapping(ctx, accountURI, satelliteConfigurationURI, band, start, end)
}

func (c *tasksClient) ListByAccountAndSiteConfigurationAndBandAndPassOverlapping(
	ctx context.Context, accountURI, siteConfigurationURI, band string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	return c.inner.ListByAccountAndSiteConfigurationAndBandAndPassOverlapping(ctx, accountURI, siteConfigurationURI, band, start, end)
}

// GetAzEl is not cached.
func (c *tasksClient) GetAzEl(ctx context.Context, href string) (*freedom.AzEl, error) {
	return c.inner.GetAzEl(ctx, href)
}

// DownloadFile is not cached.
func (c *tasksClient) DownloadFile(ctx context.Context, taskID int, name string) ([]byte, error) {
	return c.inner.DownloadFile(ctx, taskID, name)
}

type usersClient struct {
	*resourceClient[freedom.User, freedom.UserPayload]
}

type overridesClient struct {
	*resourceClient[freedom.Override, freedom.OverridePayload]
}

var (
	_ freedom.AccountsClient                = (*accountsClient)(nil)
	_ freedom.BandsClient                   = (*bandsClient)(nil)
	_ freedom.SatellitesClient              = (*satellitesClient)(nil)
	_ freedom.SatelliteConfigurationsClient = (*satelliteConfigurationsClient)(nil)
	_ freedom.SitesClient                   = (*sitesClient)(nil)
	_ freedom.SiteConfigurationsClient      = (*siteConfigurationsClient)(nil)
	_ freedom.TaskRequestsClient            = (*taskRequestsClient)(nil)
	_ freedom.TasksClient                   = (*tasksClient)(nil)
	_ freedom.UsersClient                   = (*usersClient)(nil)
	_ freedom.OverridesClient               = (*overridesClient)(nil)
)

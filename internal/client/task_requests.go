package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// TaskRequestsClient implements freedom.TaskRequestsClient.
type TaskRequestsClient struct {
	*resourceClient[freedom.TaskRequest, freedom.TaskRequestPayload]
}

// NewTaskRequestsClient creates a new task requests client.
func NewTaskRequestsClient(httpClient *http.Client, logger freedom.Logger) *TaskRequestsClient {
	return &TaskRequestsClient{
		resourceClient: newResourceClient[freedom.TaskRequest, freedom.TaskRequestPayload](
			httpClient, logger, freedom.KindTaskRequest, "task request"),
	}
}

// ListBySatelliteName implements freedom.TaskRequestsClient.ListBySatelliteName.
func (c *TaskRequestsClient) ListBySatelliteName(ctx context.Context, satelliteName string) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findBySatelliteName", url.Values{"name": {satelliteName}})
}

// ListByStatus implements freedom.TaskRequestsClient.ListByStatus.
func (c *TaskRequestsClient) ListByStatus(ctx context.Context, status freedom.TaskStatus) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findByStatus", url.Values{"status": {string(status)}})
}

// ListByTargetDateBetween implements freedom.TaskRequestsClient.ListByTargetDateBetween.
func (c *TaskRequestsClient) ListByTargetDateBetween(ctx context.Context, start, end time.Time) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findAllByTargetDateBetween", windowQuery(start, end))
}

// ListUpcomingToday implements freedom.TaskRequestsClient.ListUpcomingToday.
func (c *TaskRequestsClient) ListUpcomingToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findAllUpcomingToday", nil)
}

// ListPassedToday implements freedom.TaskRequestsClient.ListPassedToday.
func (c *TaskRequestsClient) ListPassedToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findAllPassedToday", nil)
}

// ListByAccountAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListByAccountAndTargetDateBetween.
func (c *TaskRequestsClient) ListByAccountAndTargetDateBetween(
	ctx context.Context, accountURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("account", accountURI)

	return c.findAll(ctx, "findAllByAccountAndTargetDateBetween", query)
}

// ListByAccountUpcomingToday implements freedom.TaskRequestsClient.ListByAccountUpcomingToday.
// The account is the caller's own.
func (c *TaskRequestsClient) ListByAccountUpcomingToday(ctx context.Context) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findByAccountUpcomingToday", nil)
}

// ListByConfiguration implements freedom.TaskRequestsClient.ListByConfiguration.
// Results are ordered by creation time.
func (c *TaskRequestsClient) ListByConfiguration(ctx context.Context, configurationURI string) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findAllByConfigurationOrderByCreatedAsc", url.Values{"configuration": {configurationURI}})
}

// ListByConfigurationAndSatelliteNamesAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListByConfigurationAndSatelliteNamesAndTargetDateBetween.
func (c *TaskRequestsClient) ListByConfigurationAndSatelliteNamesAndTargetDateBetween(
	ctx context.Context, configurationURI string, satelliteNames []string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("configuration", configurationURI)
	query.Set("satelliteNames", strings.Join(satelliteNames, ","))

	return c.findAll(ctx, "findAllByConfigurationAndSatelliteNamesAndTargetDateBetween", query)
}

// ListByConfigurationAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListByConfigurationAndTargetDateBetween.
func (c *TaskRequestsClient) ListByConfigurationAndTargetDateBetween(
	ctx context.Context, configurationURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("configuration", configurationURI)

	return c.findAll(ctx, "findAllByConfigurationAndTargetDateBetween", query)
}

// ListByIDs implements freedom.TaskRequestsClient.ListByIDs.
func (c *TaskRequestsClient) ListByIDs(ctx context.Context, ids []int) freedom.Seq[freedom.TaskRequest] {
	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.Itoa(id)
	}

	return c.findAll(ctx, "findAllByIds", url.Values{"ids": {strings.Join(joined, ",")}})
}

// ListByOverlappingPublic implements freedom.TaskRequestsClient.ListByOverlappingPublic.
func (c *TaskRequestsClient) ListByOverlappingPublic(ctx context.Context, start, end time.Time) freedom.Seq[freedom.TaskRequest] {
	return c.findAll(ctx, "findAllByOverlappingPublic", windowQuery(start, end))
}

// ListBySatelliteNameAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListBySatelliteNameAndTargetDateBetween.
func (c *TaskRequestsClient) ListBySatelliteNameAndTargetDateBetween(
	ctx context.Context, satelliteName string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("name", satelliteName)

	return c.findAll(ctx, "findAllBySatelliteNameAndTargetDateBetween", query)
}

// ListByStatusAndAccountAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListByStatusAndAccountAndTargetDateBetween.
func (c *TaskRequestsClient) ListByStatusAndAccountAndTargetDateBetween(
	ctx context.Context, status freedom.TaskStatus, accountURI string, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("status", string(status))
	query.Set("account", accountURI)

	return c.findAll(ctx, "findAllByStatusAndAccountAndTargetDateBetween", query)
}

// ListByTypeAndTargetDateBetween implements
// freedom.TaskRequestsClient.ListByTypeAndTargetDateBetween.
func (c *TaskRequestsClient) ListByTypeAndTargetDateBetween(
	ctx context.Context, taskType freedom.TaskType, start, end time.Time,
) freedom.Seq[freedom.TaskRequest] {
	query := windowQuery(start, end)
	query.Set("type", string(taskType))

	return c.findAll(ctx, "findAllByTypeAndTargetDateBetween", query)
}

func windowQuery(start, end time.Time) url.Values {
	return url.Values{
		"start": {freedom.FormatTime(start)},
		"end":   {freedom.FormatTime(end)},
	}
}

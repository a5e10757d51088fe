package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// TasksClient implements freedom.TasksClient.
type TasksClient struct {
	*resourceClient[freedom.Task, freedom.TaskPayload]
}

// NewTasksClient creates a new tasks client.
func NewTasksClient(httpClient *http.Client, logger freedom.Logger) *TasksClient {
	return &TasksClient{
		resourceClient: newResourceClient[freedom.Task, freedom.TaskPayload](httpClient, logger, freedom.KindTask, "task"),
	}
}

// ListByPassWindow implements freedom.TasksClient.ListByPassWindow. Only
// passes starting inside the window are returned, earliest first.
func (c *TasksClient) ListByPassWindow(ctx context.Context, start, end time.Time) freedom.Seq[freedom.Task] {
	return c.findAll(ctx, "findByStartBetweenOrderByStartAsc", windowQuery(start, end))
}

// ListUpcomingToday implements freedom.TasksClient.ListUpcomingToday.
func (c *TasksClient) ListUpcomingToday(ctx context.Context) freedom.Seq[freedom.Task] {
	return c.findAll(ctx, "findAllUpcomingToday", nil)
}

// ListPassedToday implements freedom.TasksClient.ListPassedToday.
func (c *TasksClient) ListPassedToday(ctx context.Context) freedom.Seq[freedom.Task] {
	return c.findAll(ctx, "findAllPassedToday", nil)
}

// ListByPassOverlapping implements freedom.TasksClient.ListByPassOverlapping.
// Passes that only partly fall inside the window are included.
func (c *TasksClient) ListByPassOverlapping(ctx context.Context, start, end time.Time) freedom.Seq[freedom.Task] {
	return c.findAll(ctx, "findByOverlapping", windowQuery(start, end))
}

// ListByAccountAndPassOverlapping implements freedom.TasksClient.ListByAccountAndPassOverlapping.
func (c *TasksClient) ListByAccountAndPassOverlapping(
	ctx context.Context, accountURI string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	query := windowQuery(start, end)
	query.Set("account", accountURI)

	return c.findAll(ctx, "findByAccountAndPassOverlapping", query)
}

// ListByAccountAndSatelliteAndBandAndPassOverlapping implements
// freedom.TasksClient.ListByAccountAndSatelliteAndBandAndPassOverlapping.
func (c *TasksClient) ListByAccountAndSatelliteAndBandAndPassOverlapping(
	ctx context.Context, accountURI, satelliteConfigurationURI, band string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	query := windowQuery(start, end)
	query.Set("account", accountURI)
	query.Set("satellite", satelliteConfigurationURI)
	query.Set("band", band)

	return c.findAll(ctx, "findByAccountAndSiteConfigurationAndBandAndPassOverlapping", query)
}

// ListByAccountAndSiteConfigurationAndBandAndPassOverlapping implements
// freedom.TasksClient.ListByAccountAndSiteConfigurationAndBandAndPassOverlapping.
func (c *TasksClient) ListByAccountAndSiteConfigurationAndBandAndPassOverlapping(
	ctx context.Context, accountURI, siteConfigurationURI, band string, start, end time.Time,
) freedom.Seq[freedom.Task] {
	query := windowQuery(start, end)
	query.Set("account", accountURI)
	query.Set("siteConfig", siteConfigurationURI)
	query.Set("band", band)

	return c.findAll(ctx, "findByAccountAndSiteConfigurationAndBandAndPassOverlapping", query)
}

// GetAzEl implements freedom.TasksClient.GetAzEl. href is a task's azel link.
func (c *TasksClient) GetAzEl(ctx context.Context, href string) (*freedom.AzEl, error) {
	resp, err := c.httpClient.Get(ctx, href, nil)
	if err != nil {
		return nil, fmt.Errorf("getting azimuth and elevation: %w", err)
	}

	azel, err := decodeRecord[freedom.AzEl]("azel", unwrapContent(resp.Body))
	if err != nil {
		return nil, err
	}

	return &azel, nil
}

// DownloadFile implements freedom.TasksClient.DownloadFile.
func (c *TasksClient) DownloadFile(ctx context.Context, taskID int, name string) ([]byte, error) {
	path := "downloads/" + strconv.Itoa(taskID) + "/" + url.PathEscape(name)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  "GET",
		Path:    path,
		Headers: map[string]string{"Accept": "*/*"},
	})
	if err != nil {
		return nil, fmt.Errorf("downloading %s of task %d: %w", name, taskID, err)
	}

	return resp.Body, nil
}

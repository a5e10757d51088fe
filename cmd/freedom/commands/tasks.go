package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

func taskRequestsSpec() resourceSpec[freedom.TaskRequest] {
	return resourceSpec[freedom.TaskRequest]{
		use:     "task-requests",
		aliases: []string{"task-request", "requests"},
		noun:    "task request",
		ops:     func(api freedom.API) resourceOps[freedom.TaskRequest] { return api.TaskRequests() },
		header:  []string{"ID", "Type", "Status", "Target", "Duration", "Flex (h)"},
		row: func(r *freedom.TaskRequest) []string {
			flex := constants.NotAvailable
			if r.HoursOfFlex != nil {
				flex = strconv.Itoa(*r.HoursOfFlex)
			}

			return []string{
				idOf(r), string(r.Type), orNA(string(r.Status)), formatTime(r.TargetDate),
				r.TargetDuration().String(), flex,
			}
		},
	}
}

func newTaskRequestsCommand() *cobra.Command {
	spec := taskRequestsSpec()
	spec.extra = []func() *cobra.Command{
		func() *cobra.Command {
			return newWindowSearchCommand("by-date", "List task requests targeted within a window", spec,
				func(api freedom.API) windowSearch[freedom.TaskRequest] {
					return api.TaskRequests().ListByTargetDateBetween
				})
		},
		func() *cobra.Command {
			return newTodaySearchCommand("upcoming", "List task requests still to run today", spec,
				func(api freedom.API) todaySearch[freedom.TaskRequest] { return api.TaskRequests().ListUpcomingToday })
		},
		func() *cobra.Command {
			return newTodaySearchCommand("passed", "List task requests that already ran today", spec,
				func(api freedom.API) todaySearch[freedom.TaskRequest] { return api.TaskRequests().ListPassedToday })
		},
		func() *cobra.Command { return newTaskRequestsByStatusCommand(spec) },
		func() *cobra.Command { return newTaskRequestsBySatelliteCommand(spec) },
	}

	return newResourceCommand(spec)
}

func tasksSpec() resourceSpec[freedom.Task] {
	return resourceSpec[freedom.Task]{
		use:     "tasks",
		aliases: []string{"task"},
		noun:    "task",
		ops:     func(api freedom.API) resourceOps[freedom.Task] { return api.Tasks() },
		header:  []string{"ID", "Type", "Status", "Start", "End", "Files"},
		row: func(t *freedom.Task) []string {
			return []string{
				idOf(t), orNA(string(t.Type)), orNA(string(t.Status)), formatTime(t.Start), formatTime(t.End),
				orNA(strings.Join(t.Files, ",")),
			}
		},
	}
}

func newTasksCommand() *cobra.Command {
	spec := tasksSpec()
	spec.extra = []func() *cobra.Command{
		func() *cobra.Command {
			return newWindowSearchCommand("window", "List tasks whose pass falls within a window", spec,
				func(api freedom.API) windowSearch[freedom.Task] { return api.Tasks().ListByPassWindow })
		},
		func() *cobra.Command {
			return newTodaySearchCommand("upcoming", "List tasks still to run today", spec,
				func(api freedom.API) todaySearch[freedom.Task] { return api.Tasks().ListUpcomingToday })
		},
		func() *cobra.Command {
			return newTodaySearchCommand("passed", "List tasks that already ran today", spec,
				func(api freedom.API) todaySearch[freedom.Task] { return api.Tasks().ListPassedToday })
		},
		newTaskDownloadCommand,
	}

	return newResourceCommand(spec)
}

type (
	windowSearch[T any] func(ctx context.Context, start, end time.Time) freedom.Seq[T]
	todaySearch[T any]  func(ctx context.Context) freedom.Seq[T]
)

func newWindowSearchCommand[T any](
	use, short string, spec resourceSpec[T], search func(api freedom.API) windowSearch[T],
) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". Dates accept most common layouts and default to UTC.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := ParseWindow(start, end)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				records, err := collect(search(api)(ctx, from, to), 0)
				if err != nil {
					return fmt.Errorf("failed to search %ss: %w", spec.noun, err)
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "window start")
	cmd.Flags().StringVar(&end, "end", "", "window end")

	return cmd
}

func newTodaySearchCommand[T any](
	use, short string, spec resourceSpec[T], search func(api freedom.API) todaySearch[T],
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				records, err := collect(search(api)(ctx), 0)
				if err != nil {
					return fmt.Errorf("failed to search %ss: %w", spec.noun, err)
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}
}

func newTaskRequestsByStatusCommand(spec resourceSpec[freedom.TaskRequest]) *cobra.Command {
	return &cobra.Command{
		Use:   "by-status STATUS",
		Short: "List task requests in a status",
		Long:  "List task requests in a status such as REQUESTED, APPROVED or SCHEDULED",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := freedom.TaskStatus(strings.ToUpper(args[0]))

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				records, err := collect(api.TaskRequests().ListByStatus(ctx, status), 0)
				if err != nil {
					return fmt.Errorf("failed to search task requests: %w", err)
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}
}

func newTaskRequestsBySatelliteCommand(spec resourceSpec[freedom.TaskRequest]) *cobra.Command {
	return &cobra.Command{
		Use:   "by-satellite NAME",
		Short: "List the task requests of a satellite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				records, err := collect(api.TaskRequests().ListBySatelliteName(ctx, args[0]), 0)
				if err != nil {
					return fmt.Errorf("failed to search task requests: %w", err)
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}
}

func newTaskDownloadCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download TASK_ID FILE",
		Short: "Download a task file",
		Long:  "Download one of a task's files to --out, or to a file of the same name",
		Args:  cobra.ExactArgs(2), //nolint:mnd // task id and file name
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := ParseID(args[0])
			if err != nil {
				return err
			}

			name := args[1]
			if out == "" {
				out = filepath.Base(name)
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				data, err := api.Tasks().DownloadFile(ctx, taskID, name)
				if err != nil {
					return fmt.Errorf("failed to download %s of task %d: %w", name, taskID, err)
				}

				if out == "-" {
					_, err = cmd.OutOrStdout().Write(data)

					return err
				}

				err = os.WriteFile(out, data, constants.ConfigFilePerm)
				if err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(data), out)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout")

	return cmd
}

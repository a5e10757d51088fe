package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

// resourceOps is the part of a resource client the generic commands need.
type resourceOps[T any] interface {
	Get(ctx context.Context, id int) (freedom.Container[T], error)
	List(ctx context.Context, params *freedom.QueryParams) freedom.Seq[T]
	Delete(ctx context.Context, id int) error
}

// resourceSpec describes one resource command group.
type resourceSpec[T any] struct {
	use     string
	aliases []string
	noun    string
	ops     func(api freedom.API) resourceOps[T]
	header  []string
	row     func(record *T) []string

	// byName is nil for kinds without a name lookup.
	byName func(ctx context.Context, api freedom.API, name string) (freedom.Container[T], error)

	// extra adds kind-specific subcommands.
	extra []func() *cobra.Command
}

func newResourceCommand[T any](spec resourceSpec[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: spec.aliases,
		Short:   "Manage " + spec.noun + "s",
		Long:    "List, inspect and delete Freedom " + spec.noun + "s",
	}

	cmd.AddCommand(newListCommand(spec))
	cmd.AddCommand(newGetCommand(spec))
	cmd.AddCommand(newDeleteCommand(spec))

	if spec.byName != nil {
		cmd.AddCommand(newGetByNameCommand(spec))
	}

	for _, extra := range spec.extra {
		cmd.AddCommand(extra())
	}

	return cmd
}

func newListCommand[T any](spec resourceSpec[T]) *cobra.Command {
	var (
		page  int
		size  int
		sort  []string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.noun + "s",
		Long:  "List " + spec.noun + "s, following every page unless --limit is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &freedom.QueryParams{Page: page, Size: size, Sort: sort}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				records, err := collect(spec.ops(api).List(ctx, params), limit)
				if err != nil {
					return fmt.Errorf("failed to list %ss: %w", spec.noun, err)
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "first page to fetch")
	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "records per page")
	cmd.Flags().StringSliceVar(&sort, "sort", nil, "sort order, e.g. name,asc")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many records (0 for all)")

	return cmd
}

func newGetCommand[T any](spec resourceSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID...",
		Short: "Show one or more " + spec.noun + "s",
		Long:  "Show a " + spec.noun + ", or a table of several fetched concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := ParseIDs(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				results := freedom.GetMany[T](ctx, spec.ops(api), ids, freedom.DefaultBatchConcurrency)

				err := freedom.BatchErrors(results)
				if err != nil {
					return fmt.Errorf("failed to get %ss: %w", spec.noun, err)
				}

				if len(results) == 1 {
					return renderRecord(cmd.OutOrStdout(), spec, results[0].Value.IntoInner())
				}

				records := make([]T, 0, len(results))
				for _, result := range results {
					records = append(records, result.Value.IntoInner())
				}

				return renderRecords(cmd.OutOrStdout(), spec, records)
			})
		},
	}
}

func newGetByNameCommand[T any](spec resourceSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get-by-name NAME",
		Short: "Show a " + spec.noun + " by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				record, err := spec.byName(ctx, api, args[0])
				if err != nil {
					return fmt.Errorf("failed to get %s %q: %w", spec.noun, args[0], err)
				}

				return renderRecord(cmd.OutOrStdout(), spec, record.IntoInner())
			})
		},
	}
}

func newDeleteCommand[T any](spec resourceSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete one or more " + spec.noun + "s",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := ParseIDs(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				return deleteAll(ctx, cmd.OutOrStdout(), spec.noun, ids, spec.ops(api).Delete)
			})
		},
	}
}

// deleteAll deletes every id and reports all failures together.
func deleteAll(ctx context.Context, w io.Writer, noun string, ids []int, del func(ctx context.Context, id int) error) error {
	var result *multierror.Error

	for _, id := range ids {
		err := del(ctx, id)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s %d: %w", noun, id, err))

			continue
		}

		_, _ = fmt.Fprintf(w, "Deleted %s %d\n", noun, id)
	}

	if result.ErrorOrNil() != nil {
		return fmt.Errorf("%w: %w", constants.ErrDeleteFailed, result)
	}

	return nil
}

func renderRecords[T any](w io.Writer, spec resourceSpec[T], records []T) error {
	if records == nil {
		records = []T{}
	}

	return render(w, records, func(w io.Writer) error {
		if len(records) == 0 {
			_, _ = fmt.Fprintf(w, "No %ss found\n", spec.noun)

			return nil
		}

		rows := make([][]string, 0, len(records))
		for i := range records {
			rows = append(rows, spec.row(&records[i]))
		}

		return renderTable(w, spec.header, rows)
	})
}

func renderRecord[T any](w io.Writer, spec resourceSpec[T], record T) error {
	return render(w, record, func(w io.Writer) error {
		row := spec.row(&record)

		properties := make([][2]string, 0, len(row))
		for i, value := range row {
			properties = append(properties, [2]string{spec.header[i], value})
		}

		return renderProperties(w, properties)
	})
}

// NewResourceCommands creates one command group per resource kind.
func NewResourceCommands() []*cobra.Command {
	return []*cobra.Command{
		newAccountsCommand(),
		newBandsCommand(),
		newSatellitesCommand(),
		newSatelliteConfigurationsCommand(),
		newSitesCommand(),
		newSiteConfigurationsCommand(),
		newTaskRequestsCommand(),
		newTasksCommand(),
		newUsersCommand(),
		newOverridesCommand(),
	}
}

func newAccountsCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.Account]{
		use:     "accounts",
		aliases: []string{"account"},
		noun:    "account",
		ops:     func(api freedom.API) resourceOps[freedom.Account] { return api.Accounts() },
		byName: func(ctx context.Context, api freedom.API, name string) (freedom.Container[freedom.Account], error) {
			return api.Accounts().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "External ID", "Verified", "Created"},
		row: func(a *freedom.Account) []string {
			return []string{idOf(a), a.Name, orNA(a.ExternalID), strconv.FormatBool(a.Verified), formatTimePtr(a.Created)}
		},
	})
}

func newBandsCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.Band]{
		use:     "bands",
		aliases: []string{"band"},
		noun:    "band",
		ops:     func(api freedom.API) resourceOps[freedom.Band] { return api.Bands() },
		byName: func(ctx context.Context, api freedom.API, name string) (freedom.Container[freedom.Band], error) {
			return api.Bands().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "Type", "Frequency (MHz)", "Bandwidth (MHz)", "Hardware"},
		row: func(b *freedom.Band) []string {
			return []string{
				idOf(b), b.Name, string(b.Type),
				strconv.FormatFloat(b.FrequencyMghz, 'f', -1, 64),
				strconv.FormatFloat(b.DefaultBandWidthMghz, 'f', -1, 64),
				hardwareOf(b),
			}
		},
		extra: []func() *cobra.Command{newBandsByAccountCommand},
	})
}

func newBandsByAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "by-account NAME",
		Short: "List the bands of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				bands, err := collect(api.Bands().ListByAccountName(ctx, args[0]), 0)
				if err != nil {
					return fmt.Errorf("failed to list bands of %q: %w", args[0], err)
				}

				return renderRecords(cmd.OutOrStdout(), bandsSpec(), bands)
			})
		},
	}
}

func hardwareOf(b *freedom.Band) string {
	if b.IOConfiguration.IOHardware == nil {
		return constants.NotAvailable
	}

	return string(*b.IOConfiguration.IOHardware)
}

func bandsSpec() resourceSpec[freedom.Band] {
	return resourceSpec[freedom.Band]{
		noun:   "band",
		header: []string{"ID", "Name", "Type", "Frequency (MHz)"},
		row: func(b *freedom.Band) []string {
			return []string{idOf(b), b.Name, string(b.Type), strconv.FormatFloat(b.FrequencyMghz, 'f', -1, 64)}
		},
	}
}

func newSatellitesCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.Satellite]{
		use:     "satellites",
		aliases: []string{"satellite", "sats"},
		noun:    "satellite",
		ops:     func(api freedom.API) resourceOps[freedom.Satellite] { return api.Satellites() },
		byName: func(ctx context.Context, api freedom.API, name string) (freedom.Container[freedom.Satellite], error) {
			return api.Satellites().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "NORAD ID", "Description", "Created"},
		row: func(s *freedom.Satellite) []string {
			return []string{idOf(s), s.Name, strconv.Itoa(s.NoradCatID), orNA(s.Description), formatTimePtr(s.Created)}
		},
	})
}

func newSatelliteConfigurationsCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.SatelliteConfiguration]{
		use:     "satellite-configurations",
		aliases: []string{"satellite-configuration", "sat-configs"},
		noun:    "satellite configuration",
		ops: func(api freedom.API) resourceOps[freedom.SatelliteConfiguration] {
			return api.SatelliteConfigurations()
		},
		byName: func(
			ctx context.Context, api freedom.API, name string,
		) (freedom.Container[freedom.SatelliteConfiguration], error) {
			return api.SatelliteConfigurations().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "Doppler", "Notes"},
		row: func(s *freedom.SatelliteConfiguration) []string {
			doppler := constants.NotAvailable
			if s.Doppler != nil {
				doppler = strconv.FormatBool(*s.Doppler)
			}

			notes := constants.NotAvailable
			if s.Notes != nil {
				notes = *s.Notes
			}

			return []string{idOf(s), s.Name, doppler, notes}
		},
	})
}

func newSitesCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.Site]{
		use:     "sites",
		aliases: []string{"site"},
		noun:    "site",
		ops:     func(api freedom.API) resourceOps[freedom.Site] { return api.Sites() },
		byName: func(ctx context.Context, api freedom.API, name string) (freedom.Container[freedom.Site], error) {
			return api.Sites().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "Location", "FPS Port", "Description"},
		row: func(s *freedom.Site) []string {
			location := constants.NotAvailable
			if s.Location != nil {
				location = fmt.Sprintf("%.4f, %.4f", s.Location.Latitude, s.Location.Longitude)
			}

			return []string{idOf(s), s.Name, location, strconv.Itoa(s.BaseFPSPort), orNA(s.Description)}
		},
	})
}

func newSiteConfigurationsCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.SiteConfiguration]{
		use:     "site-configurations",
		aliases: []string{"site-configuration", "configurations"},
		noun:    "site configuration",
		ops: func(api freedom.API) resourceOps[freedom.SiteConfiguration] {
			return api.SiteConfigurations()
		},
		byName: func(ctx context.Context, api freedom.API, name string) (freedom.Container[freedom.SiteConfiguration], error) {
			return api.SiteConfigurations().GetByName(ctx, name)
		},
		header: []string{"ID", "Name", "Properties"},
		row: func(s *freedom.SiteConfiguration) []string {
			return []string{idOf(s), s.Name, strconv.Itoa(len(s.Properties))}
		},
	})
}

func newUsersCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.User]{
		use:     "users",
		aliases: []string{"user"},
		noun:    "user",
		ops:     func(api freedom.API) resourceOps[freedom.User] { return api.Users() },
		header:  []string{"ID", "Name", "Email", "Machine", "Roles"},
		row: func(u *freedom.User) []string {
			return []string{
				idOf(u), strings.TrimSpace(u.FirstName + " " + u.LastName), u.Email,
				strconv.FormatBool(u.MachineService), orNA(strings.Join(u.Roles, ",")),
			}
		},
	})
}

func newOverridesCommand() *cobra.Command {
	return newResourceCommand(resourceSpec[freedom.Override]{
		use:     "overrides",
		aliases: []string{"override"},
		noun:    "override",
		ops:     func(api freedom.API) resourceOps[freedom.Override] { return api.Overrides() },
		header:  []string{"ID", "Name", "Properties"},
		row: func(o *freedom.Override) []string {
			return []string{idOf(o), o.Name, strconv.Itoa(len(o.Properties))}
		},
	})
}

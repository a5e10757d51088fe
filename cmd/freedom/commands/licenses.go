package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atlasground/freedom/pkg/freedom"
)

var licenseHeader = []string{"ID", "Name", "Account", "License Key", "Expiration"}

// NewLicensesCommand creates the gateway license command group.
func NewLicensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"license", "gateway-licenses"},
		Short:   "Manage Freedom Gateway licenses",
	}

	cmd.AddCommand(newLicensesListCommand())
	cmd.AddCommand(newLicensesGetCommand())
	cmd.AddCommand(newLicensesVerifyCommand())
	cmd.AddCommand(newLicensesRegenerateCommand())

	return cmd
}

func newLicensesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List gateway licenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				licenses, err := api.GatewayLicenses().List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list licenses: %w", err)
				}

				if licenses == nil {
					licenses = []freedom.GatewayLicense{}
				}

				return render(cmd.OutOrStdout(), licenses, func(w io.Writer) error {
					if len(licenses) == 0 {
						_, _ = fmt.Fprintln(w, "No licenses found")

						return nil
					}

					rows := make([][]string, 0, len(licenses))
					for i := range licenses {
						rows = append(rows, licenseRow(&licenses[i]))
					}

					return renderTable(w, licenseHeader, rows)
				})
			})
		},
	}
}

func newLicensesGetCommand() *cobra.Command {
	return newLicenseByIDCommand("get ID", "Show a gateway license", freedom.GatewayLicensesClient.Get)
}

func newLicensesRegenerateCommand() *cobra.Command {
	return newLicenseByIDCommand("regenerate ID", "Issue a new key for a gateway license",
		freedom.GatewayLicensesClient.Regenerate)
}

func newLicenseByIDCommand(
	use, short string, op func(freedom.GatewayLicensesClient, context.Context, int) (*freedom.GatewayLicense, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				license, err := op(api.GatewayLicenses(), ctx, id)
				if err != nil {
					return fmt.Errorf("failed to %s license %d: %w", cmd.Name(), id, err)
				}

				return renderLicense(cmd.OutOrStdout(), license)
			})
		},
	}
}

func newLicensesVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify LICENSE_KEY",
		Short: "Check a gateway license key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				result, err := api.GatewayLicenses().Verify(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to verify license: %w", err)
				}

				return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
					return renderProperties(w, [][2]string{
						{"Valid", strconv.FormatBool(result.Valid)},
						{"Message", orNA(result.Message)},
						{"Expiration", formatTimePtr(result.Expiration)},
					})
				})
			})
		},
	}
}

func renderLicense(w io.Writer, license *freedom.GatewayLicense) error {
	return render(w, license, func(w io.Writer) error {
		row := licenseRow(license)

		properties := make([][2]string, 0, len(row))
		for i, value := range row {
			properties = append(properties, [2]string{licenseHeader[i], value})
		}

		return renderProperties(w, properties)
	})
}

func licenseRow(license *freedom.GatewayLicense) []string {
	account := ""
	if license.AccountID != 0 {
		account = strconv.Itoa(license.AccountID)
	}

	return []string{
		strconv.Itoa(license.ID), orNA(license.Name), orNA(account),
		orNA(license.LicenseKey), formatTimePtr(license.Expiration),
	}
}

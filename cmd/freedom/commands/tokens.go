package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlasground/freedom/pkg/freedom"
)

// NewTokensCommand creates the FPS token command group.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Issue FPS tokens",
		Long:  "Issue front-end processor tokens for a band on a satellite or a site configuration",
	}

	cmd.AddCommand(newTokenCommand("satellite BAND_ID SATELLITE_ID", "Issue a token for a band and satellite",
		func(ctx context.Context, tokens freedom.TokensClient, bandID, targetID int) (string, error) {
			return tokens.NewBySatellite(ctx, bandID, targetID)
		}))
	cmd.AddCommand(newTokenCommand("configuration BAND_ID SITE_CONFIGURATION_ID",
		"Issue a token for a band and site configuration",
		func(ctx context.Context, tokens freedom.TokensClient, bandID, targetID int) (string, error) {
			return tokens.NewBySiteConfiguration(ctx, bandID, targetID)
		}))

	return cmd
}

func newTokenCommand(
	use, short string, issue func(ctx context.Context, tokens freedom.TokensClient, bandID, targetID int) (string, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2), //nolint:mnd // band id and target id
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := ParseIDs(args)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, api freedom.API) error {
				token, err := issue(ctx, api.Tokens(), ids[0], ids[1])
				if err != nil {
					return fmt.Errorf("failed to issue token: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)

				return nil
			})
		},
	}
}

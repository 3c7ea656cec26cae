package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <photo-id>...",
		Short: "Delete photos and their stored blobs",
		Long: `Delete removes each photo's original and thumbnail from storage and then
drops its record. Per-photo failures are reported without aborting the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				summary, err := svc.DeletePhotos(cmdCtx, args)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					if err := printJSON(out, deleteReport(summary)); err != nil {
						return err
					}
				} else {
					for _, id := range summary.Deleted {
						fmt.Fprintf(out, "Deleted %s\n", id)
					}
					for _, failure := range summary.Failures {
						fmt.Fprintf(out, "Failed %s: %v\n", failure.ID, failure.Err)
					}
					for _, failure := range summary.BlobFailures {
						fmt.Fprintf(out, "Blob not removed %s: %v\n", failure.Path, failure.Err)
					}
					fmt.Fprintf(out, "%d deleted, %d failed\n", len(summary.Deleted), len(summary.Failures))
				}

				if len(summary.Failures) > 0 {
					return fmt.Errorf("%d of %d photos failed", len(summary.Failures), len(args))
				}
				return nil
			})
		},
	}
}

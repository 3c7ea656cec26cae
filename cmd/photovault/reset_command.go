package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every photo, album, and stored file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset removes all library data; re-run with --force to confirm")
			}
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				summary, err := svc.ClearAllData(cmdCtx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return printJSON(cmd.OutOrStdout(), deleteReport(summary))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Removed %d photos\n", len(summary.Deleted))
				for _, failure := range summary.BlobFailures {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", failure.Path, failure.Err)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm destructive reset")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <photo-id> <dest-path>",
		Short: "Copy a stored original out of the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				if err := svc.Export(cmdCtx, args[0], dest); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], dest)
				return nil
			})
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newStorageCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage the blob storage root",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newStorageUseCommand(ctx))
	return cmd
}

func newStorageUseCommand(ctx *commandContext) *cobra.Command {
	var migrateFlag bool

	cmd := &cobra.Command{
		Use:   "use <directory>",
		Short: "Point the library at a new storage root",
		Long: `Use repoints the persisted storage root. Without --migrate, existing
blobs stay under the old root and only new imports land in the new one; with
--migrate, both blob trees are copied (verified) into the new root first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				copied, err := svc.ChangeStorageRoot(cmdCtx, args[0], migrateFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if migrateFlag {
					fmt.Fprintf(out, "Migrated %d file(s) and switched storage root to %s\n", copied, args[0])
					fmt.Fprintln(out, "The old tree was left in place; remove it once you have verified the copy.")
				} else {
					fmt.Fprintf(out, "Storage root set to %s (existing blobs were not moved)\n", args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrateFlag, "migrate", false, "Copy existing blobs into the new root before switching")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show library and storage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				info, err := svc.StorageInfo(cmdCtx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, storageInfoViewOf(info))
				}

				fmt.Fprintf(out, "Photos:      %d (%s)\n", info.PhotoCount, humanSize(info.TotalSizeBytes))
				fmt.Fprintf(out, "Albums:      %d\n", info.AlbumCount)
				fmt.Fprintf(out, "Library:     %s\n", info.LibraryPath)
				if info.StorageRoot == "" {
					fmt.Fprintln(out, "Storage:     not initialized (set with 'photovault storage use' or import a photo)")
					return nil
				}
				fmt.Fprintf(out, "Storage:     %s\n", info.StorageRoot)
				fmt.Fprintf(out, "Originals:   %s (%s)\n", info.PhotosDir, humanSize(info.PhotoBytes))
				fmt.Fprintf(out, "Thumbnails:  %s (%s)\n", info.ThumbnailsDir, humanSize(info.ThumbnailBytes))
				fmt.Fprintf(out, "Free space:  %s\n", humanSize(int64(info.FreeBytes)))
				return nil
			})
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var inlineFlag bool
	var fullFlag bool

	cmd := &cobra.Command{
		Use:   "show <photo-id>",
		Short: "Show one photo's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				out := cmd.OutOrStdout()

				if inlineFlag {
					var data string
					var err error
					if fullFlag {
						data, err = svc.FullResolution(cmdCtx, args[0])
					} else {
						data, err = svc.Thumbnail(cmdCtx, args[0])
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(out, data)
					return nil
				}

				photo, err := svc.Photo(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return printJSON(out, photo)
				}

				fmt.Fprintf(out, "ID:        %s\n", photo.ID)
				fmt.Fprintf(out, "Name:      %s\n", photo.Name)
				fmt.Fprintf(out, "Date:      %s\n", photo.Date)
				fmt.Fprintf(out, "Added:     %s\n", photo.DateAdded)
				fmt.Fprintf(out, "Favorite:  %s\n", favoriteLabel(photo.Favorite))
				fmt.Fprintf(out, "Faces:     %d\n", photo.Faces)
				fmt.Fprintf(out, "Album:     %s\n", albumLabel(photo))
				fmt.Fprintf(out, "Tags:      %s\n", tagsLabel(photo.Tags))
				fmt.Fprintf(out, "Size:      %s\n", humanSize(photo.FileSize))
				fmt.Fprintf(out, "Original:  %s\n", photo.RelativePath)
				fmt.Fprintf(out, "Thumbnail: %s\n", photo.ThumbnailPath)
				fmt.Fprintf(out, "Source:    %s\n", photo.OriginalPath)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&inlineFlag, "inline", false, "Print the image as a data URI instead of metadata")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "With --inline, use the full-resolution original")
	return cmd
}

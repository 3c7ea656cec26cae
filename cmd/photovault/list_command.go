package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
	"photovault/internal/gallery"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var viewFlag string
	var searchFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List photos in the gallery",
		Long: `List shows the photo collection filtered by view and search text.
Views: all, favorites, people, album:<id>. Search matches name, date, or tags,
case-insensitively. Results keep import order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := gallery.ParseView(viewFlag)
			if err != nil {
				return err
			}

			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				photos, err := svc.Query(cmdCtx, view, searchFlag)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, photos)
				}
				if len(photos) == 0 {
					fmt.Fprintln(out, "No photos match.")
					return nil
				}

				rows := make([][]string, 0, len(photos))
				for _, photo := range photos {
					rows = append(rows, []string{
						shortID(photo.ID),
						photo.Name,
						photo.Date,
						favoriteLabel(photo.Favorite),
						fmt.Sprintf("%d", photo.Faces),
						albumLabel(photo),
						tagsLabel(photo.Tags),
						humanSize(photo.FileSize),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Date", "Fav", "Faces", "Album", "Tags", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
				))
				fmt.Fprintf(out, "%d photo(s)\n", len(photos))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&viewFlag, "view", "all", "View filter: all, favorites, people, or album:<id>")
	cmd.Flags().StringVar(&searchFlag, "search", "", "Free-text filter over name, date, and tags")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <photo-id>...",
		Short: "Toggle the favorite flag on photos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				out := cmd.OutOrStdout()
				failed := 0
				for _, id := range args {
					photo, err := svc.ToggleFavorite(cmdCtx, id)
					if err != nil {
						fmt.Fprintf(out, "Failed %s: %v\n", id, err)
						failed++
						continue
					}
					state := "unfavorited"
					if photo.Favorite {
						state = "favorited"
					}
					fmt.Fprintf(out, "%s %s (%s)\n", state, photo.Name, photo.ID)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d photos failed", failed, len(args))
				}
				return nil
			})
		},
	}
}

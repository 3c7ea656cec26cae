package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newAlbumCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "album",
		Short: "Manage albums",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newAlbumCreateCommand(ctx))
	cmd.AddCommand(newAlbumListCommand(ctx))
	cmd.AddCommand(newAlbumDeleteCommand(ctx))
	cmd.AddCommand(newAlbumAssignCommand(ctx))
	cmd.AddCommand(newAlbumUnassignCommand(ctx))
	return cmd
}

func newAlbumCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("album name is required")
			}
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				album, err := svc.SaveAlbum(cmdCtx, name)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, album)
				}
				fmt.Fprintf(out, "Created album %q (%s)\n", album.Name, album.ID)
				return nil
			})
		},
	}
}

func newAlbumListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List albums with member counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				albums, err := svc.Albums(cmdCtx)
				if err != nil {
					return err
				}
				photos, err := svc.Photos(cmdCtx)
				if err != nil {
					return err
				}
				counts := make(map[string]int)
				for _, photo := range photos {
					if photo.Album != nil {
						counts[*photo.Album]++
					}
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, albums)
				}
				if len(albums) == 0 {
					fmt.Fprintln(out, "No albums.")
					return nil
				}
				rows := make([][]string, 0, len(albums))
				for _, album := range albums {
					rows = append(rows, []string{
						shortID(album.ID),
						album.Name,
						fmt.Sprintf("%d", counts[album.ID]),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Photos"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newAlbumDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <album-id>",
		Short: "Delete an album (photos are kept and unassigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				cleared, err := svc.DeleteAlbum(cmdCtx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted album %s; %d photo(s) unassigned\n", args[0], cleared)
				return nil
			})
		},
	}
}

func newAlbumAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <album-id> <photo-id>...",
		Short: "Assign photos to an album",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				updated, failures, err := svc.AssignToAlbum(cmdCtx, args[1:], args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, photo := range updated {
					fmt.Fprintf(out, "Assigned %s to album %s\n", photo.Name, args[0])
				}
				for _, failure := range failures {
					fmt.Fprintf(out, "Failed %s: %v\n", failure.ID, failure.Err)
				}
				if len(failures) > 0 {
					return fmt.Errorf("%d of %d photos failed", len(failures), len(args)-1)
				}
				return nil
			})
		},
	}
}

func newAlbumUnassignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <photo-id>...",
		Short: "Remove photos from their album",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				updated, failures, err := svc.UnassignFromAlbum(cmdCtx, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, photo := range updated {
					fmt.Fprintf(out, "Unassigned %s\n", photo.Name)
				}
				for _, failure := range failures {
					fmt.Fprintf(out, "Failed %s: %v\n", failure.ID, failure.Err)
				}
				if len(failures) > 0 {
					return fmt.Errorf("%d of %d photos failed", len(failures), len(args))
				}
				return nil
			})
		},
	}
}

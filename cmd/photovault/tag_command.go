package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var addFlags []string
	var removeFlags []string

	cmd := &cobra.Command{
		Use:   "tag <photo-id>",
		Short: "Add or remove free-text tags on a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(addFlags) == 0 && len(removeFlags) == 0 {
				return errors.New("nothing to do: pass --add and/or --remove")
			}

			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				id := args[0]
				var err error
				if len(addFlags) > 0 {
					if _, err = svc.AddTags(cmdCtx, id, addFlags); err != nil {
						return err
					}
				}
				photo, err := svc.Photo(cmdCtx, id)
				if err != nil {
					return err
				}
				if len(removeFlags) > 0 {
					if photo, err = svc.RemoveTags(cmdCtx, id, removeFlags); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, photo)
				}
				fmt.Fprintf(out, "%s tags: %s\n", photo.Name, tagsLabel(photo.Tags))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&addFlags, "add", nil, "Tag to add (repeatable)")
	cmd.Flags().StringSliceVar(&removeFlags, "remove", nil, "Tag to remove (repeatable)")
	return cmd
}

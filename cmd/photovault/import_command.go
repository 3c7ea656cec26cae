package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"photovault/internal/api"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import image files into the library",
		Long: `Import copies each image into the storage root, produces a thumbnail,
and records its metadata. Files that fail are skipped and reported; the rest
of the batch continues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					if errors.Is(err, os.ErrNotExist) {
						return fmt.Errorf("file does not exist: %s", arg)
					}
					return fmt.Errorf("inspect file: %w", err)
				}
				if info.IsDir() {
					return fmt.Errorf("%s is a directory", arg)
				}
			}

			return ctx.withService(cmd, func(cmdCtx context.Context, svc *api.Service) error {
				result, err := svc.Import(cmdCtx, args)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return printJSON(out, importReport(result))
				}

				for _, photo := range result.Imported {
					fmt.Fprintf(out, "Imported %s as %s (%s)\n", photo.Name, photo.ID, humanSize(photo.FileSize))
				}
				for _, failure := range result.Failures {
					fmt.Fprintf(out, "Skipped %s: %v\n", filepath.Base(failure.Path), failure.Err)
				}
				fmt.Fprintf(out, "%d imported, %d failed\n", len(result.Imported), len(result.Failures))
				return nil
			})
		},
	}
}

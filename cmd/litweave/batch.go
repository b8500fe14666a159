package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwtly10/litweave"
	"github.com/jwtly10/litweave/internal/cli"
	"github.com/jwtly10/litweave/internal/render"
	"github.com/jwtly10/litweave/internal/transformer"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Convert every script under a directory",
	Long: `Batch walks a directory tree, honoring .gitignore when the directory is
a git repository, and converts every .R/.r script it finds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		doRender, _ := cmd.Flags().GetBool("render")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		opts := transformer.TransformOptions{
			Convert: litweave.Options{
				Format: litweave.Format(format),
			},
			Render:   doRender,
			NoBackup: noBackup,
		}

		p, err := cli.NewProcessor(opts, render.NewHTML())
		if err != nil {
			return err
		}

		results, err := p.ProcessPath(args[0])
		if err != nil {
			return err
		}

		for _, r := range results {
			fmt.Printf("%s -> %s\n", r.Path, r.OutPath)
		}
		fmt.Printf("Converted %d file(s)\n", len(results))
		return nil
	},
}

func init() {
	batchCmd.Flags().String("format", "Rmd", "target format: Rmd, Rnw, Rhtml, Rtex or Rrst")
	batchCmd.Flags().Bool("render", false, "render each document to a final artifact")
	batchCmd.Flags().Bool("no-backup", false, "do not back up existing output documents")

	rootCmd.AddCommand(batchCmd)
}

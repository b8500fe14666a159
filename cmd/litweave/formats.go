package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwtly10/litweave"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported formats and their chunk tokens",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FORMAT\tCHUNK OPEN\tCHUNK OPEN CLOSE\tCHUNK CLOSE\tINLINE")
		for _, f := range litweave.Formats() {
			pat, _ := litweave.PatternFor(f)
			fmt.Fprintf(w, "%s\t%q\t%q\t%q\t%q\n",
				f, pat.ChunkOpen, pat.ChunkOpenClose, pat.ChunkClose, pat.InlineTemplate)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

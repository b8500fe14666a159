package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwtly10/litweave"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of litweave",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("litweave %s\n", litweave.VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

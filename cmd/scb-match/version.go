package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scb-match version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scb-match %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

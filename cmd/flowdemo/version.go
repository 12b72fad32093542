package main

import (
	"fmt"

	"github.com/gogpu/flow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowdemo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flowdemo version %s\n", flow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"
	"io"

	"github.com/gogpu/flow/internal/scenario"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>...",
	Short: "Check scenario files for errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, paths []string) error {
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(w, "%s: %q is valid (%dx%d, %d platform views)\n", path, s.Name, s.Width, s.Height, len(s.ViewIDs()))
	}
	return nil
}

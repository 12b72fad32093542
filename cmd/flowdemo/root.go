package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/flow"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowdemo",
	Short: "flowdemo composites platform views from scenario files",
	Long: `flowdemo loads a YAML layer tree with platform views, draws it through
the compositor and prints the layers and view geometry of every frame as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", level, err)
		}
		flow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

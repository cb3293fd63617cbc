// Package main provides the neurowatch entrypoint: the dashboard server and
// a small waveform tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var root string
	rootCmd := &cobra.Command{
		Use:          "neurowatch",
		Short:        "Mock EEG monitoring dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(root)
		},
	}
	rootCmd.PersistentFlags().StringVar(&root, "root", ".", "project root holding config/ and assets/")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(root)
		},
	}

	rootCmd.AddCommand(serveCmd, newWaveformCmd())
	return rootCmd
}

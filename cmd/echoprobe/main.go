package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hamed0406/echoprobe/internal/config"
)

func main() {
	if err := newRootCmd(config.FromEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✖", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "echoprobe",
		Short:         "Contract check for a JSON echo endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRunCmd(cfg),
		newServeCmd(cfg),
		newPreflightCmd(cfg),
	)
	return root
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewcore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viewcore",
		Short: "Drive and inspect viewcore view trees",
		Long: `viewcore runs a sample todo application through the view
reconciliation core.

  • demo   replays a scripted session and prints every patch
  • serve  serves the live tree to the HTTP and websocket inspector`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags globalFlags
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: viewcore.json or viewcore.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.noColor {
			errors.DisableColors()
		}
	}

	rootCmd.AddCommand(
		demoCmd(&flags),
		serveCmd(&flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

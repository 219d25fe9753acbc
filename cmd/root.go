package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aidooit/qualidoo/output"
)

var (
	// Version information injected by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Log level for diagnostic output (e.g. "debug", "info", "warn", "error")
const envKeyLogLevel = "QUALIDOO_LOG_LEVEL"

var rootCmd = &cobra.Command{
	Use:           "qualidoo",
	Short:         "AI-powered Odoo addon quality analyzer",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{})

		// Diagnostics default to warn; report output itself goes to stdout.
		level := log.WarnLevel
		if raw := os.Getenv(envKeyLogLevel); raw != "" {
			parsed, err := log.ParseLevel(raw)
			if err != nil {
				log.Warnf("unable to parse log level: %v", err)
			} else {
				level = parsed
			}
		}
		log.SetLevel(level)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qualidoo %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built at: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Exit with a nonzero exit code if the command fails with an error
		fmt.Fprintln(os.Stderr, output.ErrorLine(err.Error()))
		os.Exit(1)
	}
}

// Package cli provides the cobra command tree for chatprep.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
	"github.com/custodia-labs/chatprep/internal/logger"
)

var version = "dev"

// Services injected by main.
var (
	datasetService  driving.DatasetService
	settingsService driving.SettingsService
	corpusWatcher   driven.CorpusWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "chatprep",
	Short: "Prepare movie dialogue for sequence-to-sequence training",
	Long: `chatprep turns a movie-dialogue corpus into integer-encoded
question/answer pairs, bucketed by question length.

It reads an utterance file and a conversation file, normalises the text,
builds frequency-filtered vocabularies and caches the result.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
}

// Services holds the driving ports the commands use.
type Services struct {
	Dataset  driving.DatasetService
	Settings driving.SettingsService
	Watcher  driven.CorpusWatcher // optional
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	datasetService = s.Dataset
	settingsService = s.Settings
	corpusWatcher = s.Watcher
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

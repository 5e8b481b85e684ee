package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
)

// Pipeline flag names.
const (
	flagLines         = "lines"
	flagConversations = "conversations"
	flagThreshold     = "threshold"
	flagMinLength     = "min-length"
	flagMaxLength     = "max-length"
	flagRefresh       = "refresh"
	flagWatch         = "watch"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the encoded dataset",
	Long: `Loads the corpus, extracts question/answer pairs, builds the vocabularies
and buckets the encoded pairs by question length.

Flags override the stored settings for this run only. A dataset built
from the same files and settings is served from the cache unless
--refresh is given. With --watch the dataset is rebuilt whenever either
corpus file changes.`,
	Args: cobra.NoArgs,
	RunE: runPrepare,
}

func init() {
	addPipelineFlags(prepareCmd)
	prepareCmd.Flags().Bool(flagRefresh, false, "Rebuild even when a cached dataset exists")
	prepareCmd.Flags().Bool(flagWatch, false, "Rebuild when the corpus files change")
	rootCmd.AddCommand(prepareCmd)
}

// addPipelineFlags registers the per-run setting overrides on cmd.
func addPipelineFlags(cmd *cobra.Command) {
	defaults := domain.DefaultPipelineSettings()
	cmd.Flags().String(flagLines, defaults.LinesPath, "Utterance file")
	cmd.Flags().String(flagConversations, defaults.ConversationsPath, "Conversation file")
	cmd.Flags().Int(flagThreshold, defaults.Threshold, "Minimum combined token frequency")
	cmd.Flags().Int(flagMinLength, defaults.MinQuestionLength, "Shortest question kept")
	cmd.Flags().Int(flagMaxLength, defaults.MaxQuestionLength, "Longest question kept")
}

// resolveSettings returns the stored settings with any flags the
// user set applied on top.
func resolveSettings(cmd *cobra.Command) (domain.PipelineSettings, error) {
	settings := domain.DefaultPipelineSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return settings, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *stored
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed(flagLines) {
		settings.LinesPath, err = flags.GetString(flagLines)
	}
	if err == nil && flags.Changed(flagConversations) {
		settings.ConversationsPath, err = flags.GetString(flagConversations)
	}
	if err == nil && flags.Changed(flagThreshold) {
		settings.Threshold, err = flags.GetInt(flagThreshold)
	}
	if err == nil && flags.Changed(flagMinLength) {
		settings.MinQuestionLength, err = flags.GetInt(flagMinLength)
	}
	if err == nil && flags.Changed(flagMaxLength) {
		settings.MaxQuestionLength, err = flags.GetInt(flagMaxLength)
	}
	return settings, err
}

// loadDataset prepares the dataset for cmd's settings, from cache when possible.
func loadDataset(cmd *cobra.Command) (*domain.Dataset, error) {
	if datasetService == nil {
		return nil, errors.New("dataset service not configured")
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	ds, err := datasetService.Prepare(commandContext(cmd), driving.PrepareRequest{Settings: settings})
	if err != nil {
		return nil, fmt.Errorf("prepare failed: %w", err)
	}
	return ds, nil
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	refresh, _ := cmd.Flags().GetBool(flagRefresh)
	watch, _ := cmd.Flags().GetBool(flagWatch)

	ctx := commandContext(cmd)
	st := StylesFor(cmd.OutOrStdout())

	ds, err := datasetService.Prepare(ctx, driving.PrepareRequest{Settings: settings, Refresh: refresh})
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}
	writeSummary(cmd.OutOrStdout(), st, ds)

	if !watch {
		return nil
	}
	return watchAndPrepare(ctx, cmd, st, settings)
}

// watchAndPrepare rebuilds the dataset on every corpus change until ctx ends.
// Build errors are reported and watching continues.
func watchAndPrepare(ctx context.Context, cmd *cobra.Command, st *Styles, settings domain.PipelineSettings) error {
	if corpusWatcher == nil {
		return errors.New("corpus watcher not configured")
	}

	changes, err := corpusWatcher.Watch(ctx, settings.LinesPath, settings.ConversationsPath)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println(st.Render(st.Muted, fmt.Sprintf("Watching %s and %s for changes (Ctrl+C to stop)...",
		settings.LinesPath, settings.ConversationsPath)))

	for range changes {
		cmd.Println("Corpus changed, rebuilding...")
		ds, err := datasetService.Prepare(ctx, driving.PrepareRequest{Settings: settings})
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			cmd.Println(st.Render(st.Warning, fmt.Sprintf("Rebuild failed: %v", err)))
			continue
		}
		writeSummary(cmd.OutOrStdout(), st, ds)
	}

	return nil
}

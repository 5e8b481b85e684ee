package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached datasets",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached datasets",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached datasets",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	summaries, err := datasetService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No cached datasets.")
		return nil
	}

	cmd.Printf("Cached datasets (%d):\n", len(summaries))
	for _, s := range summaries {
		cmd.Printf("  %s  %s  threshold=%d  length=%d-%d  pairs=%d\n",
			s.ID,
			s.CreatedAt.Local().Format(time.DateTime),
			s.Key.Threshold,
			s.Key.MinQuestionLength,
			s.Key.MaxQuestionLength,
			s.Stats.BucketedPairs,
		)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	removed, err := datasetService.Clear(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	cmd.Printf("Removed %d cached dataset(s).\n", removed)
	return nil
}

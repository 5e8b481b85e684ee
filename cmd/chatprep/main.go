// Command chatprep prepares a movie-dialogue corpus for
// sequence-to-sequence training.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/chatprep/internal/adapters/driven/config/file"
	corpusfile "github.com/custodia-labs/chatprep/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/chatprep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chatprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/core/services"
	"github.com/custodia-labs/chatprep/internal/logger"
	"github.com/custodia-labs/chatprep/internal/normalisers/dialogue"
	"github.com/custodia-labs/chatprep/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	// The cache is optional. Without it every prepare rebuilds.
	var datasetStore driven.DatasetStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("dataset cache unavailable: %v", err)
	} else {
		defer store.Close()
		datasetStore = store.DatasetStore()
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	watcher := corpusfile.NewWatcher()
	defer watcher.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Dataset: services.NewDatasetService(
			corpusfile.NewReader(),
			dialogue.New(),
			registry,
			datasetStore,
		),
		Settings: services.NewSettingsService(configStore),
		Watcher:  watcher,
	})

	// cobra reports the error itself.
	return cli.Execute(ctx)
}

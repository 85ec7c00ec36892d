package commands

import (
	"os/signal"
	"syscall"

	"github.com/c360studio/karma/source"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newWatchCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and ingest documents as they change",
		Long: `Watch monitors a directory tree for new or modified documentation and
runs each changed file through the pipeline. Writes are debounced, and
files whose content has not changed since last processing are skipped.

The graph is saved after every processed document, so a crash loses at
most the document in flight. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.buildApp()
			if err != nil {
				return err
			}

			watcher, err := source.NewWatcher(args[0],
				source.WithDebounce(a.cfg.Watch.Debounce),
				source.WithExtensions(a.cfg.Watch.Extensions),
				source.WithWatcherLogger(a.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()

			color.Cyan("Watching %s (extensions: %v)", args[0], a.cfg.Watch.Extensions)

			loader := source.NewLoader(source.WithLoaderLogger(a.logger))

			for {
				select {
				case <-ctx.Done():
					a.logger.Info("Watch stopped")
					return nil
				case event, ok := <-watcher.Events():
					if !ok {
						return nil
					}

					doc, err := loader.Load(event.Path)
					if err != nil {
						color.Red("✗ %s: %v", event.Path, err)
						continue
					}

					record, err := a.pipe.Process(ctx, doc)
					if err != nil {
						color.Red("✗ %s: %v", event.Path, err)
						continue
					}
					printRunRecord(record)

					if err := a.save(cmd); err != nil {
						a.logger.Error("Failed to save graph", "error", err)
					}
				}
			}
		},
	}

	return cmd
}

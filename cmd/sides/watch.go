package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/sides/internal/config"
	"github.com/jackzampolin/sides/internal/export"
	"github.com/jackzampolin/sides/internal/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and extract dialogue from new scripts",
	Long: `Watch a drop directory for new screenplay files. When a PDF or text
file appears and its size has settled, dialogue for the configured
characters is extracted next to it.

The directory comes from the argument or from watch.dir in config;
the character list comes from config. Edits to the config file are
picked up without restarting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cm.WatchConfigFile()

		dir := cm.Get().Watch.Dir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			return fmt.Errorf("no watch directory: pass one or set watch.dir in config")
		}
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			return fmt.Errorf("watch directory not found: %s", dir)
		}
		if len(cm.Get().Characters) == 0 {
			return fmt.Errorf("watch mode needs characters in config")
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		log.Info("watching for scripts", "dir", dir)
		for {
			select {
			case <-ctx.Done():
				log.Info("watch stopped")
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Create) || !isScript(event.Name) {
					continue
				}
				processScript(ctx, log, cm.Get(), event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// processScript extracts one dropped script. Failures are logged, never
// fatal: the watch loop outlives any single bad file.
func processScript(ctx context.Context, log *slog.Logger, cfg *config.Config, path string) {
	runID := uuid.New().String()
	log = log.With("run_id", runID, "script", filepath.Base(path))

	outDir := export.OutDirFor(path)
	if _, err := os.Stat(outDir); err == nil {
		log.Debug("output directory exists, skipping")
		return
	}

	if err := waitForStable(ctx, path, cfg.Watch.StableSeconds); err != nil {
		log.Warn("script never settled", "error", err)
		return
	}

	src, err := source.Open(path)
	if err != nil {
		log.Warn("failed to open script", "error", err)
		return
	}
	pages, err := src.Pages(ctx)
	if err != nil {
		log.Warn("failed to read script", "error", err)
		return
	}

	res, err := runSegmenter(ctx, cfg, cfg.Characters, pages)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return
	}

	if _, err := export.Write(export.Request{Result: res, OutDir: outDir, Logger: log}); err != nil {
		log.Warn("export failed", "error", err)
		return
	}
	log.Info("extraction complete", "pages", len(pages), "blocks", res.Total(), "dir", outDir)
}

// waitForStable polls until the file's size stops changing, so a script
// still being copied into the drop directory is not read half-written.
func waitForStable(ctx context.Context, path string, stableSeconds int) error {
	if stableSeconds <= 0 {
		stableSeconds = 2
	}

	var (
		lastSize  int64 = -1
		stableFor int
	)
	return retry.Do(
		func() error {
			st, err := os.Stat(path)
			if err != nil {
				return err
			}
			if st.Size() == 0 || st.Size() != lastSize {
				lastSize = st.Size()
				stableFor = 0
				return fmt.Errorf("size still changing: %d", st.Size())
			}
			stableFor++
			if stableFor < stableSeconds {
				return fmt.Errorf("settling: stable for %ds of %ds", stableFor, stableSeconds)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(stableSeconds)+30),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
	)
}

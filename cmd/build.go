package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/content"
)

const rebuildDebounce = 500 * time.Millisecond

var (
	watchBuild bool
	buildMu    sync.Mutex
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Exports the rendered page as static files",
	Long: `The build command renders index.html from the data directory and copies
the data and static directories next to it in the output directory. With
--watch it keeps running and rebuilds whenever a data or static file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuild(cmd.Context()); err != nil {
			return err
		}

		if !watchBuild {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchAndRebuild(ctx)
	},
}

func init() {
	buildCmd.Flags().BoolVarP(&watchBuild, "watch", "w", false, "rebuild when data or static files change")
	rootCmd.AddCommand(buildCmd)
}

// runBuild replaces the output directory with a fresh export.
func runBuild(ctx context.Context) error {
	site, err := newSite()
	if err != nil {
		return err
	}

	page, doc, err := site.Page(ctx)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	outputDir := appConfig.OutputDir
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("clean output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	index, err := os.Create(filepath.Join(outputDir, "index.html"))
	if err != nil {
		return fmt.Errorf("create index.html: %w", err)
	}
	defer index.Close()

	if err := site.Renderer.Page(index, page); err != nil {
		return fmt.Errorf("write index.html: %w", err)
	}

	if err := copyDir(appConfig.DataDir, filepath.Join(outputDir, content.DataDir)); err != nil {
		return err
	}
	if err := copyDir(appConfig.StaticDir, filepath.Join(outputDir, "static")); err != nil {
		return err
	}

	log.Info("site built",
		zap.String("output", outputDir),
		zap.Int("sections", len(page.Sections)),
		zap.Int("skipped", len(doc.Failures)),
	)

	return index.Close()
}

// copyDir copies src into dst. A missing src is not an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		log.Debug("directory not found, not copied", zap.String("dir", src))

		return nil
	}

	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return nil
}

func watchAndRebuild(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range []string{appConfig.DataDir, appConfig.StaticDir} {
		if err := watchTree(watcher, root); err != nil {
			return err
		}
	}

	log.Info("watching for changes", zap.Strings("dirs", watcher.WatchList()))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			log.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(rebuildDebounce, func() {
				buildMu.Lock()
				defer buildMu.Unlock()

				if err := runBuild(ctx); err != nil {
					log.Error("rebuild failed", zap.Error(err))
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchTree adds root and every directory below it. fsnotify is not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.Info("directory not found, not watching", zap.String("dir", root))

		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		return nil
	})
}

package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchPaths lists the directories to watch for inputs: each input directory
// (or the parent of an input file), plus the custom asset directory.
func watchPaths(s *session, inputs []string) []string {
	var paths []string
	for _, in := range inputs {
		if in == stdinArg {
			continue
		}
		paths = append(paths, absPath(s.cwd, in))
	}
	if len(paths) == 0 {
		paths = append(paths, s.cwd)
	}
	if s.cfg.Assets.BasePath != "" {
		paths = append(paths, absPath(s.cwd, s.cfg.Assets.BasePath))
	}
	return paths
}

// watch calls rebuild after changes to files under paths matching match,
// until ctx is done. Rebuild errors are printed, not returned.
func watch(ctx context.Context, paths []string, match func(string) bool, logger *slog.Logger, env *Environment, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addWatchTree(watcher, p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}
	fmt.Fprintln(env.Stderr, env.UI.Dim(fmt.Sprintf("Watching %d path(s), press Ctrl+C to stop", len(paths))))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatchTree(watcher, event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !match(event.Name) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(watchDebounce)

		case <-timer.C:
			if err := rebuild(); err != nil {
				printError(env, err, "")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(env.Stderr, env.UI.Warn("warning: file watcher: "+err.Error()))
		}
	}
}

// addWatchTree watches dir and its subdirectories. A file path watches its
// parent, since editors often replace files rather than write them.
func addWatchTree(w *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

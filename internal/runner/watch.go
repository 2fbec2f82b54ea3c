package runner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"ctor-generator/internal/gen"
	"ctor-generator/internal/logger"
)

// fileChangeDebounceDelay batches the events of one save.
const fileChangeDebounceDelay = 200 * time.Millisecond

// ignoredDirs contains directories that are never watched.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"testdata":     true,
	".idea":        true,
	".vscode":      true,
}

// Watch regenerates on every change to a Go source file below the working
// directory until ctx is canceled. done is called after each run, including
// the initial one.
func (r *Runner) Watch(ctx context.Context, done func(*Report, error), patterns ...string) error {
	log := logger.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	root := r.dir
	if root == "" {
		root = "."
	}

	dirs, err := watchDirs(root)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warn("Failed to watch directory", "path", dir, "error", err)
		}
	}

	log.Info("File watcher initialized", "watched_directories", len(dirs))

	done(r.Run(ctx, ModeGenerate, patterns...))

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !r.relevant(event) {
				continue
			}

			log.Debug("Change detected", "file", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				addIfDir(watcher, event.Name)
			}

			if debounce == nil {
				debounce = time.NewTimer(fileChangeDebounceDelay)
			} else {
				debounce.Reset(fileChangeDebounceDelay)
			}

			fire = debounce.C
		case <-fire:
			fire = nil

			done(r.Run(ctx, ModeGenerate, patterns...))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn("File watcher error", "error", err)
		}
	}
}

// relevant reports whether event touches an input file. Writes of the
// output file and its debug sidecar are ignored.
func (r *Runner) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)

	switch {
	case base == r.cfg.Output, base == r.cfg.Output+gen.DebugSuffix:
		return false
	case strings.HasSuffix(base, ".go"):
		return true
	default:
		// New directories may hold packages.
		return event.Has(fsnotify.Create) && filepath.Ext(base) == ""
	}
}

func addIfDir(watcher *fsnotify.Watcher, path string) {
	dirs, err := watchDirs(path)
	if err != nil {
		return
	}

	for _, dir := range dirs {
		_ = watcher.Add(dir)
	}
}

// watchDirs lists root and its subdirectories, skipping hidden and ignored ones.
func watchDirs(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root && (ignoredDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}

		dirs = append(dirs, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return dirs, nil
}

package colorswap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/yacobolo/colorswap/internal/replace"
)

// DefaultDebounce is how long the watcher waits for changes to settle
const DefaultDebounce = 300 * time.Millisecond

// WatchConfig configures a Watcher
type WatchConfig struct {
	Build    Config
	Debounce time.Duration             // default: 300ms
	OnBuild  func(*BuildResult, error) // called after every build (optional)
}

// Watcher rebuilds whenever the palette or a source file changes. The
// palette is reloaded from disk on every build.
type Watcher struct {
	config    WatchConfig
	watcher   *fsnotify.Watcher
	logger    zerolog.Logger
	filter    *fileFilter
	sourceDir string
	palette   string // absolute, "" without a palette file

	trigger chan struct{}
	timerMu sync.Mutex
	timer   *time.Timer
}

// NewWatcher creates a watcher. Call Run to start it and Close to release
// the underlying file watcher.
func NewWatcher(config WatchConfig) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	config.Build = config.Build.withDefaults()

	sourceDir, err := filepath.Abs(config.Build.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolve source dir: %w", err)
	}

	outputDir := config.Build.OutputDir
	if outputDir != "" {
		if outputDir, err = filepath.Abs(outputDir); err != nil {
			return nil, fmt.Errorf("resolve output dir: %w", err)
		}
	}

	palettePath := ""
	if config.Build.Palette != "" {
		if palettePath, err = filepath.Abs(config.Build.Palette); err != nil {
			return nil, fmt.Errorf("resolve palette: %w", err)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		config:    config,
		watcher:   fw,
		logger:    config.Build.Logger,
		filter:    newFileFilter(sourceDir, outputDir, config.Build.Excludes),
		sourceDir: sourceDir,
		palette:   palettePath,
		trigger:   make(chan struct{}, 1),
	}, nil
}

// Run builds once, then rebuilds on every relevant change until ctx is
// cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addTree(w.sourceDir); err != nil {
		return err
	}
	if w.palette != "" {
		// the directory, not the file: editors replace files on save
		if err := w.watcher.Add(filepath.Dir(w.palette)); err != nil {
			return fmt.Errorf("failed to watch palette directory: %w", err)
		}
	}

	w.logger.Info().
		Str("source", w.sourceDir).
		Str("palette", w.palette).
		Dur("debounce", w.config.Debounce).
		Msg("watching for changes")

	w.build(ctx)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-w.trigger:
			w.build(ctx)

		case <-ctx.Done():
			w.stopTimer()
			return nil
		}
	}
}

// Close stops the watcher; a running Run returns
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

func (w *Watcher) build(ctx context.Context) {
	start := time.Now()
	result, err := Build(ctx, w.config.Build)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logger.Error().Err(err).Msg("build failed")
		}
	} else {
		w.logger.Info().
			Int("changed", result.FilesChanged).
			Int("replacements", result.Replacements).
			Dur("took", time.Since(start)).
			Msg("rebuilt")
	}

	if w.config.OnBuild != nil {
		w.config.OnBuild(result, err)
	}
}

// handleEvent schedules a build for relevant changes and starts watching
// directories created under the source tree
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	if w.palette != "" && filepath.Clean(event.Name) == w.palette {
		w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("palette changed")
		w.schedule()
		return
	}

	rel, ok := w.relative(event.Name)
	if !ok || w.filter.shouldSkip(rel) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn().Err(err).Str("dir", rel).Msg("failed to watch new directory")
			}
			w.schedule()
			return
		}
	}

	if replace.Classify(rel) == replace.KindNone {
		return
	}

	w.logger.Debug().Str("file", rel).Str("op", event.Op.String()).Msg("source changed")
	w.schedule()
}

// relative returns path relative to the source dir, slash separated
func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.sourceDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// addTree watches root and every directory below it that is not skipped
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		if rel, ok := w.relative(path); ok {
			if strings.HasPrefix(d.Name(), ".") || w.filter.shouldSkip(rel) || w.filter.shouldSkip(rel+"/") {
				return filepath.SkipDir
			}
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// schedule (re)starts the debounce timer
func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

package colorswap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/yacobolo/colorswap/internal/palette"
	"github.com/yacobolo/colorswap/internal/replace"
	"golang.org/x/sync/errgroup"
)

// errTimeout marks a file whose rewrite exceeded Config.FileTimeout
var errTimeout = errors.New("file rewrite timed out")

// fileOutcome is the in-memory result of rewriting one file
type fileOutcome struct {
	path     string // relative, slash separated
	kind     replace.Kind
	source   string
	result   replace.Result
	timedOut bool
	err      error // read failure; the file is left alone
}

func (o *fileOutcome) changed() bool {
	return o.err == nil && !o.timedOut && o.result.Output != o.source
}

// pipeline loads the palette once and rewrites files with a shared engine
type pipeline struct {
	config Config
	tokens palette.TokenMap
	engine *replace.Engine
	logger zerolog.Logger
}

func newPipeline(config Config) (*pipeline, error) {
	tokens, err := palette.LoadTokens(config.Palette, config.InlineColors)
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}

	return &pipeline{
		config: config,
		tokens: tokens,
		engine: replace.New(tokens, replace.WithLogger(config.Logger)),
		logger: config.Logger,
	}, nil
}

// run discovers files and rewrites them in parallel. visit is called from
// the worker goroutine for every outcome; a visit error stops the run.
func (p *pipeline) run(ctx context.Context, visit func(*fileOutcome) error) ([]*fileOutcome, ScanStats, error) {
	files, stats, err := discoverFiles(p.config.SourceDir, p.config.OutputDir, p.config.Includes, p.config.Excludes)
	if err != nil {
		return nil, stats, fmt.Errorf("scan failed: %w", err)
	}

	p.logger.Debug().
		Int("files", stats.FilesScanned).
		Int("skipped", stats.FilesSkipped).
		Msg("discovered source files")

	outcomes := make([]*fileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Workers)

	for i, rel := range files {
		g.Go(func() error {
			outcome, err := p.processFile(gctx, rel)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			if visit != nil {
				return visit(outcome)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	return outcomes, stats, nil
}

// processFile reads and rewrites one file. Only context cancellation is
// returned as an error; everything else is recorded on the outcome.
func (p *pipeline) processFile(ctx context.Context, rel string) (*fileOutcome, error) {
	outcome := &fileOutcome{path: rel, kind: replace.Classify(rel)}

	data, err := os.ReadFile(p.sourcePath(rel))
	if err != nil {
		outcome.err = err
		return outcome, nil
	}
	outcome.source = string(data)

	result, err := p.rewrite(ctx, rel, outcome.source)
	switch {
	case errors.Is(err, errTimeout):
		outcome.timedOut = true
		outcome.result = replace.Result{Output: outcome.source}
		p.logger.Warn().
			Str("file", rel).
			Dur("timeout", p.config.FileTimeout).
			Msg("rewrite timed out, file left unchanged")
	case err != nil:
		return nil, err
	default:
		outcome.result = result
	}

	return outcome, nil
}

// rewrite runs the engine under the per-file budget. The engine cannot be
// interrupted, so on timeout its eventual output is discarded.
func (p *pipeline) rewrite(ctx context.Context, rel, source string) (replace.Result, error) {
	done := make(chan replace.Result, 1)
	go func() {
		done <- p.engine.Rewrite(rel, source)
	}()

	timer := time.NewTimer(p.config.FileTimeout)
	defer timer.Stop()

	select {
	case result := <-done:
		return result, nil
	case <-timer.C:
		return replace.Result{}, errTimeout
	case <-ctx.Done():
		return replace.Result{}, ctx.Err()
	}
}

func (p *pipeline) sourcePath(rel string) string {
	return filepath.Join(p.config.SourceDir, filepath.FromSlash(rel))
}

// destPath is where a file is written: mirrored under OutputDir, or in place
func (p *pipeline) destPath(rel string) string {
	if p.config.OutputDir == "" {
		return p.sourcePath(rel)
	}
	return filepath.Join(p.config.OutputDir, filepath.FromSlash(rel))
}

// Build rewrites every matching file under config.SourceDir.
//
// The palette is read from disk on every call. Per-file failures (unreadable
// files, timeouts, unwritable outputs) become warnings and the build goes on;
// only palette, glob and context errors abort it.
func Build(ctx context.Context, config Config) (*BuildResult, error) {
	config = config.withDefaults()
	result := &BuildResult{}

	p, err := newPipeline(config)
	if err != nil {
		return nil, err
	}
	result.Tokens = len(p.tokens)

	if len(p.tokens) == 0 {
		p.logger.Warn().Str("palette", config.Palette).Msg("no color tokens found, skipping build")
		result.Warnings = append(result.Warnings, "no color tokens found in palette, nothing replaced")
		return result, nil
	}

	p.logger.Info().Int("tokens", len(p.tokens)).Str("source", config.SourceDir).Msg("building")

	outcomes, stats, err := p.run(ctx, func(o *fileOutcome) error {
		return p.write(o)
	})
	if err != nil {
		return nil, err
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped

	for _, o := range outcomes {
		file := FileResult{
			Path:         o.path,
			Kind:         o.kind.String(),
			Changed:      o.changed(),
			Replacements: o.result.Count(),
			Fallback:     o.result.Fallback,
			TimedOut:     o.timedOut,
		}

		switch {
		case o.err != nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to process %s: %v", o.path, o.err))
		case o.timedOut:
			result.TimedOut++
			result.Warnings = append(result.Warnings, fmt.Sprintf("Timed out rewriting %s after %s", o.path, config.FileTimeout))
		}

		if o.result.Fallback {
			result.Fallbacks++
			result.Warnings = append(result.Warnings, fmt.Sprintf("Could not parse %s, replaced tokens by pattern only", o.path))
		}
		if file.Changed {
			result.FilesChanged++
			result.Replacements += file.Replacements
			if config.Diff {
				file.Diff = renderDiff(o.path, o.source, o.result.Output)
			}
		}

		result.Files = append(result.Files, file)
	}

	p.logger.Info().
		Int("scanned", result.FilesScanned).
		Int("changed", result.FilesChanged).
		Int("replacements", result.Replacements).
		Msg("build finished")

	return result, nil
}

// write stores a rewritten file. Unchanged files are copied when building
// into a separate output directory. Write failures are recorded on the
// outcome rather than stopping the build.
func (p *pipeline) write(o *fileOutcome) error {
	if p.config.DryRun || o.err != nil {
		return nil
	}

	changed := o.changed()
	if !changed && p.config.OutputDir == "" {
		return nil
	}

	dest := p.destPath(o.path)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		o.err = fmt.Errorf("create output directory: %w", err)
		return nil
	}

	content := o.source
	if changed {
		content = o.result.Output
	}
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		o.err = fmt.Errorf("write output: %w", err)
		return nil
	}

	if changed {
		p.logger.Debug().Str("file", o.path).Int("replacements", o.result.Count()).Msg("file rewritten")
	}
	return nil
}

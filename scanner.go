package colorswap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/yacobolo/colorswap/internal/replace"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped by excludes or .gitignore
}

// FileLocation tracks where a token occurrence was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based byte column (exact start of the token)
	Text   string // Full line content for source display
}

// fileFilter decides which discovered files are skipped
type fileFilter struct {
	excludes  []string
	gitignore *ignore.GitIgnore
	outputDir string // relative to the source dir, "" when outside or in place
}

// newFileFilter loads sourceDir/.gitignore fresh for every build.
// A missing .gitignore is fine.
func newFileFilter(sourceDir, outputDir string, excludes []string) *fileFilter {
	f := &fileFilter{excludes: excludes}

	if gi, err := ignore.CompileIgnoreFile(filepath.Join(sourceDir, ".gitignore")); err == nil {
		f.gitignore = gi
	}

	if outputDir != "" {
		if rel, err := filepath.Rel(sourceDir, outputDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			f.outputDir = filepath.ToSlash(rel)
		}
	}

	return f
}

// shouldSkip reports whether rel (slash separated, relative to the source
// dir) is excluded, ignored, or part of the build output
//
// Three-layer filtering:
// 1. Output check: never read back what a previous build wrote
// 2. Exclude globs
// 3. .gitignore
func (f *fileFilter) shouldSkip(rel string) bool {
	if f.outputDir != "" && (rel == f.outputDir || strings.HasPrefix(rel, f.outputDir+"/")) {
		return true
	}

	for _, pattern := range f.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return f.gitignore != nil && f.gitignore.MatchesPath(rel)
}

// discoverFiles expands includes under sourceDir and returns the files the
// replacer handles, as slash separated paths relative to sourceDir
func discoverFiles(sourceDir, outputDir string, includes, excludes []string) ([]string, ScanStats, error) {
	filter := newFileFilter(sourceDir, outputDir, excludes)
	stats := ScanStats{}
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range includes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, stats, fmt.Errorf("glob pattern %q is invalid", pattern)
		}

		// Use doublestar for ** glob support
		matches, err := doublestar.Glob(os.DirFS(sourceDir), pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(filepath.Join(sourceDir, filepath.FromSlash(match)))
			if err != nil || info.IsDir() || replace.Classify(match) == replace.KindNone {
				continue
			}

			stats.FilesDiscovered++
			if filter.shouldSkip(match) {
				stats.FilesSkipped++
				continue
			}

			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// locateTokens finds where tokens occur in source. Only occurrences that
// overlap a changed range are kept, so the result lines up with what the
// engine actually rewrote. Longer tokens claim their text first.
func locateTokens(source string, tokens []string, changed []byteRange) map[string][]FileLocation {
	if len(changed) == 0 {
		return nil
	}

	lines := newLineIndex(source)
	claimed := make([]byteRange, 0)
	found := make(map[string][]FileLocation)

	for _, token := range tokens {
		for start := 0; start < len(source); {
			idx := strings.Index(source[start:], token)
			if idx < 0 {
				break
			}
			begin := start + idx
			end := begin + len(token)
			start = begin + 1

			if !isTokenBoundary(source, begin, end) {
				continue
			}
			r := byteRange{begin, end}
			if !overlapsAny(r, changed) || overlapsAny(r, claimed) {
				continue
			}

			claimed = append(claimed, r)
			found[token] = append(found[token], lines.location(begin))
		}
	}

	return found
}

// isTokenBoundary reports whether source[begin:end] is not part of a longer
// identifier or path
func isTokenBoundary(source string, begin, end int) bool {
	if begin > 0 && isTokenChar(source[begin-1]) {
		return false
	}
	if end < len(source) && (isTokenChar(source[end]) || source[end] == '/') {
		return false
	}
	return true
}

func isTokenChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// byteRange is a half-open [start, end) range of byte offsets
type byteRange struct {
	start, end int
}

func (r byteRange) overlaps(o byteRange) bool {
	if r.start == r.end {
		return r.start >= o.start && r.start < o.end
	}
	return r.start < o.end && o.start < r.end
}

func overlapsAny(r byteRange, ranges []byteRange) bool {
	for _, o := range ranges {
		if r.overlaps(o) {
			return true
		}
	}
	return false
}

// lineIndex maps byte offsets to 1-based line and column numbers
type lineIndex struct {
	source string
	starts []int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{source: source, starts: starts}
}

func (l *lineIndex) location(offset int) FileLocation {
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	start := l.starts[line]

	end := len(l.source)
	if line+1 < len(l.starts) {
		end = l.starts[line+1] - 1
	}

	return FileLocation{
		Line:   line + 1,
		Column: offset - start + 1,
		Text:   strings.TrimRight(l.source[start:end], "\r"),
	}
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}

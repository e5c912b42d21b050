package colorswap

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// changedRanges returns the byte ranges of original that differ in rewritten.
// Pure insertions are returned as empty ranges at their offset.
func changedRanges(original, rewritten string) []byteRange {
	if original == rewritten {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, rewritten, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var ranges []byteRange
	offset := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			offset += len(d.Text)
		case diffmatchpatch.DiffDelete:
			ranges = append(ranges, byteRange{offset, offset + len(d.Text)})
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			ranges = append(ranges, byteRange{offset, offset})
		}
	}

	return ranges
}

// renderDiff formats a line-oriented diff of one file for dry-run output
func renderDiff(path, original, rewritten string) string {
	if original == rewritten {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, rewritten)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s\n", path, path)

	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}

	return out.String()
}

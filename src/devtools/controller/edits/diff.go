package edits

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const _diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// UnifiedDiff renders the line differences between before and after as a unified diff of file.
// Identical contents render as an empty string.
func UnifiedDiff(file string, before string, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []diffLine
	for _, d := range diffs {
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			lines = append(lines, diffLine{op: d.Type, text: strings.TrimSuffix(l, "\n")})
		}
	}

	// oldBefore[i] and newBefore[i] count the lines of each side preceding lines[i].
	oldBefore := make([]int, len(lines)+1)
	newBefore := make([]int, len(lines)+1)
	for i, l := range lines {
		oldBefore[i+1], newBefore[i+1] = oldBefore[i], newBefore[i]
		if l.op != diffmatchpatch.DiffInsert {
			oldBefore[i+1]++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newBefore[i+1]++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a%s\n+++ b%s\n", file, file)
	for _, h := range hunks(lines) {
		oldCount := oldBefore[h.end+1] - oldBefore[h.start]
		newCount := newBefore[h.end+1] - newBefore[h.start]
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunkStart(oldBefore[h.start], oldCount), oldCount,
			hunkStart(newBefore[h.start], newCount), newCount)
		for _, l := range lines[h.start : h.end+1] {
			switch l.op {
			case diffmatchpatch.DiffInsert:
				sb.WriteByte('+')
			case diffmatchpatch.DiffDelete:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type hunk struct {
	start int
	end   int
}

// hunks groups changed lines with their surrounding context, merging groups whose context touches.
func hunks(lines []diffLine) []hunk {
	var result []hunk
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-_diffContext, 0)
		end := min(i+_diffContext, len(lines)-1)
		if n := len(result); n > 0 && start <= result[n-1].end+1 {
			result[n-1].end = end
			continue
		}
		result = append(result, hunk{start: start, end: end})
	}
	return result
}

// hunkStart is the 1-based first line of a hunk side, or the line before it when the side is empty.
func hunkStart(before int, count int) int {
	if count == 0 {
		return before
	}
	return before + 1
}

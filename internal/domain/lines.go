package domain

import (
	"sort"
	"strings"

	m "github.com/mouse-blink/nodecov/internal/model"
)

// LineIndex maps offsets into a source text to 1-indexed line numbers.
type LineIndex struct {
	// newlines holds the offset of every '\n', ascending, in the index's unit.
	newlines []int
}

// NewLineIndex records the newline offsets of source measured in unit.
func NewLineIndex(source string, unit m.OffsetUnit) *LineIndex {
	idx := &LineIndex{newlines: make([]int, 0, strings.Count(source, "\n"))}

	if unit == m.UnitUTF16 {
		offset := 0

		for _, r := range source {
			if r == '\n' {
				idx.newlines = append(idx.newlines, offset)
			}

			offset += utf16Len(r)
		}

		return idx
	}

	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}

	return idx
}

// LineOf returns one plus the number of newlines strictly before offset.
func (idx *LineIndex) LineOf(offset int) int {
	return sort.SearchInts(idx.newlines, offset) + 1
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}

	return 1
}

// UncoveredLines collects every line touched by a zero-count range. Ranges
// that executed contribute nothing, even where they overlap an unexecuted one.
func UncoveredLines(idx *LineIndex, functions []m.FunctionCoverage) m.UncoveredLines {
	uncovered := make(m.UncoveredLines)

	for _, fn := range functions {
		for _, r := range fn.Ranges {
			if r.Count != 0 {
				continue
			}

			uncovered.Add(idx.LineOf(r.StartOffset), idx.LineOf(r.EndOffset))
		}
	}

	return uncovered
}

// GenerateCoverageReport annotates every line of source. A line is uncovered
// when it is in an unexecuted range and does not begin with a closing brace.
// The brace rule is a coarse approximation: "} else {" is never flagged.
func GenerateCoverageReport(filename m.Path, source string, functions []m.FunctionCoverage, unit m.OffsetUnit) m.FileReport {
	uncovered := UncoveredLines(NewLineIndex(source, unit), functions)

	texts := strings.Split(source, "\n")
	lines := make([]m.Line, 0, len(texts))

	for i, text := range texts {
		number := i + 1
		lines = append(lines, m.Line{
			Number:  number,
			Text:    text,
			Covered: !uncovered.Has(number) || strings.HasPrefix(text, "}"),
		})
	}

	return m.FileReport{Path: filename, Lines: lines}
}

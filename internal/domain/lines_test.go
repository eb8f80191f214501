package domain

import (
	"strings"
	"testing"

	m "github.com/mouse-blink/nodecov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex_LineOf(t *testing.T) {
	source := "const a = 1;\n\nfunction f() {\n  return a;\n}\n"
	idx := NewLineIndex(source, m.UnitByte)

	assert.Equal(t, 1, idx.LineOf(0))

	prev := 0
	for offset := 0; offset <= len(source); offset++ {
		got := idx.LineOf(offset)
		want := 1 + strings.Count(source[:offset], "\n")

		assert.Equalf(t, want, got, "offset %d", offset)
		assert.GreaterOrEqual(t, got, prev)

		prev = got
	}

	// An offset pointing at a newline still belongs to the line it ends.
	assert.Equal(t, 1, idx.LineOf(strings.Index(source, "\n")))
	assert.Equal(t, 2, idx.LineOf(strings.Index(source, "\n")+1))
}

func TestLineIndex_EmptySource(t *testing.T) {
	idx := NewLineIndex("", m.UnitByte)

	assert.Equal(t, 1, idx.LineOf(0))
	assert.Equal(t, 1, idx.LineOf(100))
}

func TestLineIndex_UTF16(t *testing.T) {
	// "😀" is four bytes but two UTF-16 code units; "é" is two bytes but one unit.
	source := "const s = \"😀é\";\nf();\n"

	utf16 := NewLineIndex(source, m.UnitUTF16)
	bytes := NewLineIndex(source, m.UnitByte)

	firstNewlineUnits := len("const s = \"") + 2 + 1 + len("\";")
	firstNewlineBytes := strings.Index(source, "\n")

	assert.Equal(t, 1, utf16.LineOf(firstNewlineUnits))
	assert.Equal(t, 2, utf16.LineOf(firstNewlineUnits+1))

	assert.Equal(t, 1, bytes.LineOf(firstNewlineBytes))
	assert.Equal(t, 2, bytes.LineOf(firstNewlineBytes+1))
}

func TestUncoveredLines(t *testing.T) {
	source := "l1\nl2\nl3\nl4\nl5\nl6\n"
	idx := NewLineIndex(source, m.UnitByte)

	lineStart := func(line int) int {
		return (line - 1) * 3
	}

	tests := []struct {
		name      string
		functions []m.FunctionCoverage
		want      []int
	}{
		{
			name:      "no functions",
			functions: nil,
			want:      nil,
		},
		{
			name: "executed ranges contribute nothing",
			functions: []m.FunctionCoverage{{
				Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source), Count: 3}},
			}},
			want: nil,
		},
		{
			name: "zero range spans start to end line",
			functions: []m.FunctionCoverage{{
				Ranges: []m.Range{
					{StartOffset: 0, EndOffset: len(source), Count: 1},
					{StartOffset: lineStart(2) + 1, EndOffset: lineStart(4), Count: 0},
				},
			}},
			want: []int{2, 3, 4},
		},
		{
			name: "overlapping zero ranges are idempotent",
			functions: []m.FunctionCoverage{
				{Ranges: []m.Range{{StartOffset: lineStart(2), EndOffset: lineStart(3) + 1, Count: 0}}},
				{Ranges: []m.Range{{StartOffset: lineStart(3), EndOffset: lineStart(5), Count: 0}}},
				{Ranges: []m.Range{{StartOffset: lineStart(3), EndOffset: lineStart(5), Count: 0}}},
			},
			want: []int{2, 3, 4, 5},
		},
		{
			name: "single line range",
			functions: []m.FunctionCoverage{{
				Ranges: []m.Range{{StartOffset: lineStart(6), EndOffset: lineStart(6) + 2, Count: 0}},
			}},
			want: []int{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UncoveredLines(idx, tt.functions)

			require.Len(t, got, len(tt.want))
			for _, line := range tt.want {
				assert.Truef(t, got.Has(line), "line %d should be uncovered", line)
			}
		})
	}
}

func TestGenerateCoverageReport(t *testing.T) {
	t.Run("untaken branch", func(t *testing.T) {
		source := "function pick(flag) {\n  if (flag) {\n    return \"yes\";\n  }\n  return \"no\";\n}\n\npick(false);\n"

		thenStart := strings.Index(source, "{\n    return")
		thenEnd := strings.Index(source, "  }\n") + 3

		functions := []m.FunctionCoverage{
			{FunctionName: "", Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source), Count: 1}}},
			{
				FunctionName:    "pick",
				IsBlockCoverage: true,
				Ranges: []m.Range{
					{StartOffset: 0, EndOffset: strings.Index(source, "\n\npick"), Count: 1},
					{StartOffset: thenStart, EndOffset: thenEnd, Count: 0},
				},
			},
		}

		report := GenerateCoverageReport("/app/branch.js", source, functions, m.UnitByte)

		assert.Equal(t, m.Path("/app/branch.js"), report.Path)
		require.Len(t, report.Lines, 9)

		covered := make([]bool, 0, len(report.Lines))
		for i, line := range report.Lines {
			assert.Equal(t, i+1, line.Number)
			covered = append(covered, line.Covered)
		}

		assert.Equal(t, []bool{true, false, false, false, true, true, true, true, true}, covered)
	})

	t.Run("top-level only", func(t *testing.T) {
		source := "const x = 1;\nconsole.log(x);\n"

		report := GenerateCoverageReport("/app/plain.js", source, []m.FunctionCoverage{
			{Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source), Count: 1}}},
		}, m.UnitByte)

		for _, line := range report.Lines {
			assert.True(t, line.Covered, line.Text)
		}
	})

	t.Run("no functions", func(t *testing.T) {
		report := GenerateCoverageReport("/app/empty.js", "a\nb", nil, m.UnitByte)

		require.Len(t, report.Lines, 2)
		assert.True(t, report.Lines[0].Covered)
		assert.True(t, report.Lines[1].Covered)
	})

	t.Run("closing brace lines are never flagged", func(t *testing.T) {
		source := "if (x) {\n  a();\n} else {\n  b();\n}\n"

		report := GenerateCoverageReport("/app/else.js", source, []m.FunctionCoverage{
			{Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source), Count: 0}}},
		}, m.UnitByte)

		got := make(map[string]bool)
		for _, line := range report.Lines {
			got[line.Text] = line.Covered
		}

		assert.False(t, got["if (x) {"])
		assert.False(t, got["  a();"])
		assert.True(t, got["} else {"])
		assert.True(t, got["}"])
	})

	t.Run("indented closing brace is flagged", func(t *testing.T) {
		source := "function f() {\n  if (y) {\n  }\n}\n"

		report := GenerateCoverageReport("/app/f.js", source, []m.FunctionCoverage{
			{Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source) - 1, Count: 0}}},
		}, m.UnitByte)

		assert.False(t, report.Lines[2].Covered)
		assert.True(t, report.Lines[3].Covered)
	})

	t.Run("line text is preserved exactly", func(t *testing.T) {
		source := "\tconst a = 1;  \r\n\t\treturn a;\r\n"

		report := GenerateCoverageReport("/app/crlf.js", source, nil, m.UnitByte)

		require.Len(t, report.Lines, 3)
		assert.Equal(t, "\tconst a = 1;  \r", report.Lines[0].Text)
		assert.Equal(t, "\t\treturn a;\r", report.Lines[1].Text)
		assert.Equal(t, "", report.Lines[2].Text)
	})

	t.Run("utf16 offsets", func(t *testing.T) {
		source := "const s = \"😀\";\nfunction dead() {\n  return s;\n}\n"

		// Offsets in UTF-16 code units: the emoji counts as two, not four.
		deadStart := strings.Index(source, "function dead") - 2

		report := GenerateCoverageReport("/app/emoji.js", source, []m.FunctionCoverage{
			{Ranges: []m.Range{{StartOffset: 0, EndOffset: len(source) - 2, Count: 1}}},
			{FunctionName: "dead", Ranges: []m.Range{{StartOffset: deadStart, EndOffset: len(source) - 3, Count: 0}}},
		}, m.UnitUTF16)

		assert.True(t, report.Lines[0].Covered)
		assert.False(t, report.Lines[1].Covered)
		assert.False(t, report.Lines[2].Covered)
		assert.True(t, report.Lines[3].Covered)
	})
}

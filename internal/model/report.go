package model

// UncoveredLines is a set of 1-indexed line numbers that fall inside at least
// one zero-count range.
type UncoveredLines map[int]struct{}

// Add marks every line in [from, to] as uncovered.
func (u UncoveredLines) Add(from, to int) {
	for line := from; line <= to; line++ {
		u[line] = struct{}{}
	}
}

// Has reports whether line is in the set.
func (u UncoveredLines) Has(line int) bool {
	_, ok := u[line]
	return ok
}

// Line is a single rendered source line.
type Line struct {
	Number  int
	Text    string
	Covered bool
}

// FileReport holds the annotated listing for a single source file.
type FileReport struct {
	Path  Path
	Lines []Line
}

// FileResult holds the report for one covered file, or the reason it could not be produced.
type FileResult struct {
	Report FileReport
	Err    error
}

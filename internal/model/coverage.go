// Package model defines the data structures shared by the coverage collector and reporter.
package model

// Range is a contiguous offset span of a script tagged with how many times it ran.
// A Count of exactly 0 means the region never executed.
type Range struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
	Count       int `json:"count"`
}

// FunctionCoverage holds the block ranges observed for a single function.
type FunctionCoverage struct {
	FunctionName    string  `json:"functionName"`
	Ranges          []Range `json:"ranges"`
	IsBlockCoverage bool    `json:"isBlockCoverage"`
}

// CoverageRecord is the coverage observed for one script.
type CoverageRecord struct {
	ScriptID  string             `json:"scriptId"`
	URL       string             `json:"url"`
	Functions []FunctionCoverage `json:"functions"`
}

// CoverageSnapshot is the result of a single precise coverage snapshot.
type CoverageSnapshot struct {
	Result []CoverageRecord `json:"result"`
}

// CoverageOptions configures precise coverage collection.
type CoverageOptions struct {
	CallCount bool `json:"callCount"`
	Detailed  bool `json:"detailed"`
}

// OffsetUnit tells how range offsets index into the source text.
type OffsetUnit int

const (
	// UnitByte means offsets count bytes of the UTF-8 source.
	UnitByte OffsetUnit = iota
	// UnitUTF16 means offsets count UTF-16 code units, as V8 reports them.
	UnitUTF16
)

func (u OffsetUnit) String() string {
	switch u {
	case UnitUTF16:
		return "utf16"
	default:
		return "byte"
	}
}

// Collection is the outcome of one profiled run of an entrypoint.
type Collection struct {
	Records []CoverageRecord
	// Self is the module that loaded the entrypoint; it is never reported.
	Self Path
	Unit OffsetUnit
}

// Package models defines the data structures shared by the casepairs pipeline.
package models

// Column names written to the dataset header, in order.
const (
	ColumnJudgement = "judgement"
	ColumnSummary   = "summary"
)

// RawPair is a judgement/summary match as found on disk, before cleaning.
// A nil field means the side could not be loaded.
type RawPair struct {
	// Name is the shared filename that joined both sides.
	Name string
	// Dir is the parent directory holding the judgement and summary folders.
	Dir string

	Judgement *string
	Summary   *string
}

// RawDataset is the collector output in traversal order.
type RawDataset []RawPair

// Pair is one cleaned row of the dataset.
type Pair struct {
	Judgement string
	Summary   string
}

// Dataset is the ordered collection of pairs produced by one run.
type Dataset []Pair

// NewRawPair builds a RawPair with both sides present.
func NewRawPair(dir, name, judgement, summary string) RawPair {
	return RawPair{
		Name:      name,
		Dir:       dir,
		Judgement: &judgement,
		Summary:   &summary,
	}
}

// Complete reports whether both sides are present.
func (p RawPair) Complete() bool {
	return p.Judgement != nil && p.Summary != nil
}

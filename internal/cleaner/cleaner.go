// Package cleaner drops incomplete and blank pairs from a collected dataset.
package cleaner

import (
	"github.com/raphaelgruber/casepairs/internal/models"
	"github.com/raphaelgruber/casepairs/internal/textio"
)

// Report counts pairs before and after cleaning.
type Report struct {
	Before int
	After  int

	// DroppedMissing counts pairs with a side that was never loaded.
	DroppedMissing int
	// DroppedBlank counts pairs with an empty or whitespace-only side.
	DroppedBlank int
}

// Dropped returns the total number of removed pairs.
func (r Report) Dropped() int {
	return r.Before - r.After
}

// Clean keeps the pairs whose judgement and summary are both present and
// contain at least one non-whitespace character. Order is preserved.
func Clean(raw models.RawDataset) (models.Dataset, Report) {
	report := Report{Before: len(raw)}
	out := make(models.Dataset, 0, len(raw))

	for _, p := range raw {
		if !p.Complete() {
			report.DroppedMissing++
			continue
		}
		if isBlank(*p.Judgement) || isBlank(*p.Summary) {
			report.DroppedBlank++
			continue
		}
		out = append(out, models.Pair{Judgement: *p.Judgement, Summary: *p.Summary})
	}

	report.After = len(out)
	return out, report
}

// CleanPairs applies the blank filter to pairs that did not come from Clean,
// such as a hand-built Dataset. Running it on Clean output returns an
// identical dataset, which is how idempotence of cleaning is checked.
func CleanPairs(pairs models.Dataset) (models.Dataset, Report) {
	report := Report{Before: len(pairs)}
	out := make(models.Dataset, 0, len(pairs))

	for _, p := range pairs {
		if isBlank(p.Judgement) || isBlank(p.Summary) {
			report.DroppedBlank++
			continue
		}
		out = append(out, p)
	}

	report.After = len(out)
	return out, report
}

func isBlank(s string) bool {
	return textio.IsBlank(s)
}

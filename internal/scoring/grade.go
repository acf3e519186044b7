// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Grade band table and score classification.

package scoring

import serr "seolens-mcp/internal/errors"

// Grade is a letter grade derived from a composite score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeBand maps a contiguous score range to a grade and status label.
type GradeBand struct {
	Grade    Grade  `json:"grade"`
	MinScore int    `json:"min_score"`
	Label    string `json:"label"`
}

// gradeBands is ordered descending by MinScore. The bands partition [0,100]
// with no gaps or overlaps; the lowest band starts at 0.
var gradeBands = []GradeBand{
	{Grade: GradeA, MinScore: 90, Label: "Excellent"},
	{Grade: GradeB, MinScore: 80, Label: "Good"},
	{Grade: GradeC, MinScore: 70, Label: "Needs Work"},
	{Grade: GradeD, MinScore: 60, Label: "Poor"},
	{Grade: GradeF, MinScore: 0, Label: "Critical"},
}

// Classify selects the highest band whose MinScore does not exceed score.
// The aggregator's clamping should make out-of-range input unreachable, but
// the classifier does not assume that.
func Classify(score int) (GradeBand, error) {
	if score < 0 || score > 100 {
		return GradeBand{}, serr.NewOutOfRangeScore(score)
	}
	for _, b := range gradeBands {
		if score >= b.MinScore {
			return b, nil
		}
	}
	// unreachable while the lowest band starts at 0
	return GradeBand{}, serr.NewOutOfRangeScore(score)
}

// Bands returns a copy of the grade band table.
func Bands() []GradeBand {
	out := make([]GradeBand, len(gradeBands))
	copy(out, gradeBands)
	return out
}

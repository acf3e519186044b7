package scoring

import "sort"

// Severity tags a finding and drives deduction weight.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Penalty returns the points deducted per finding of this severity.
func (s Severity) Penalty() float64 {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0.5
	}
	return 0
}

// order returns a sort key (lower = more severe).
func (s Severity) order() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 4
}

// Finding is a discrete, severity-tagged observation against one component.
// Findings only ever reduce a score; they are never mutated after creation.
type Finding struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// SortFindings orders findings most severe first, stable within a severity.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].Severity.order() < fs[j].Severity.order()
	})
}

// penaltyTotal sums the severity-weighted deductions for a finding list.
func penaltyTotal(fs []Finding) float64 {
	var total float64
	for _, f := range fs {
		total += f.Severity.Penalty()
	}
	return total
}

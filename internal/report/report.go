// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Package report assembles scored components into an audit report.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	serr "seolens-mcp/internal/errors"
	"seolens-mcp/internal/scoring"
)

// maxRecommendations caps the recommendation list in a report.
const maxRecommendations = 5

// Report is the stable JSON output consumed by report renderers.
type Report struct {
	Site            string                   `json:"site,omitempty"`
	AuditType       scoring.AuditType        `json:"audit_type"`
	Overall         int                      `json:"overall"`
	Grade           scoring.Grade            `json:"grade"`
	Label           string                   `json:"label"`
	Sections        []Section                `json:"sections,omitempty"`
	Components      []scoring.ComponentScore `json:"components"`
	Summary         Summary                  `json:"summary"`
	Recommendations []string                 `json:"recommendations,omitempty"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// Section is the per-audit-type breakdown inside an overall report.
type Section struct {
	AuditType scoring.AuditType `json:"audit_type"`
	Overall   int               `json:"overall"`
	Grade     scoring.Grade     `json:"grade"`
	Label     string            `json:"label"`
}

// Summary counts findings by severity across all components.
type Summary struct {
	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`
}

// Build aggregates and classifies component scores into a report. The caller
// supplies the timestamp so that report construction stays deterministic.
func Build(t scoring.AuditType, site string, scores []scoring.ComponentScore, generatedAt time.Time) (*Report, error) {
	if !t.Valid() {
		return nil, serr.NewInvalidInput(fmt.Sprintf("unknown audit type %q", t), "use technical, content, ai_visibility, or overall", nil)
	}

	r := &Report{
		Site:        site,
		AuditType:   t,
		GeneratedAt: generatedAt,
	}

	if t == scoring.AuditOverall {
		if err := buildOverall(r, scores); err != nil {
			return nil, err
		}
	} else {
		overall, err := scoring.Aggregate(t, scores)
		if err != nil {
			return nil, err
		}
		band, err := scoring.Classify(overall)
		if err != nil {
			return nil, err
		}
		r.Overall = overall
		r.Grade = band.Grade
		r.Label = band.Label
		r.Components = withWeights(t, scores)
	}

	r.Summary = summarize(r.Components)
	r.Recommendations = recommendations(r.Components)
	return r, nil
}

// buildOverall computes each section score independently; the overall score
// is the round-half-up mean of the three sections.
func buildOverall(r *Report, scores []scoring.ComponentScore) error {
	types := scoring.SectionTypes()
	var sum float64
	for _, st := range types {
		overall, err := scoring.Aggregate(st, sectionScores(st, scores))
		if err != nil {
			return err
		}
		band, err := scoring.Classify(overall)
		if err != nil {
			return err
		}
		r.Sections = append(r.Sections, Section{AuditType: st, Overall: overall, Grade: band.Grade, Label: band.Label})
		sum += float64(overall)
	}
	overall := roundHalfUp(sum / float64(len(types)))
	band, err := scoring.Classify(overall)
	if err != nil {
		return err
	}
	r.Overall = overall
	r.Grade = band.Grade
	r.Label = band.Label
	r.Components = append([]scoring.ComponentScore(nil), scores...)
	return nil
}

// sectionScores filters the full component list down to one section's set.
func sectionScores(t scoring.AuditType, scores []scoring.ComponentScore) []scoring.ComponentScore {
	required := make(map[scoring.Component]bool)
	for _, c := range scoring.RequiredComponents(t) {
		required[c] = true
	}
	out := make([]scoring.ComponentScore, 0, len(scores))
	for _, s := range scores {
		if required[s.Component] {
			out = append(out, s)
		}
	}
	return withWeights(t, out)
}

// withWeights returns copies carrying the audit type's weighted max.
func withWeights(t scoring.AuditType, scores []scoring.ComponentScore) []scoring.ComponentScore {
	out := make([]scoring.ComponentScore, len(scores))
	for i, s := range scores {
		if w, ok := scoring.Weight(t, s.Component); ok {
			s.WeightedMax = w
		}
		out[i] = s
	}
	return out
}

func summarize(scores []scoring.ComponentScore) Summary {
	var s Summary
	for _, cs := range scores {
		for _, f := range cs.Findings {
			switch f.Severity {
			case scoring.SeverityCritical:
				s.CriticalCount++
			case scoring.SeverityHigh:
				s.HighCount++
			case scoring.SeverityMedium:
				s.MediumCount++
			case scoring.SeverityLow:
				s.LowCount++
			}
		}
	}
	return s
}

var severityRank = map[scoring.Severity]int{
	scoring.SeverityCritical: 0,
	scoring.SeverityHigh:     1,
	scoring.SeverityMedium:   2,
	scoring.SeverityLow:      3,
}

// recommendations lists the most severe findings first, component-tagged.
func recommendations(scores []scoring.ComponentScore) []string {
	type tagged struct {
		finding   scoring.Finding
		component scoring.Component
	}
	var all []tagged
	for _, cs := range scores {
		for _, f := range cs.Findings {
			all = append(all, tagged{finding: f, component: cs.Component})
		}
	}
	// stable sort keeps component order for equal severities
	sort.SliceStable(all, func(i, j int) bool {
		return severityRank[all[i].finding.Severity] < severityRank[all[j].finding.Severity]
	})

	n := len(all)
	if n > maxRecommendations {
		n = maxRecommendations
	}
	out := make([]string, 0, n)
	for _, t := range all[:n] {
		out = append(out, fmt.Sprintf("[%s] %s (%s)", t.finding.Severity, t.finding.Description, t.component))
	}
	return out
}

// roundHalfUp rounds to the nearest integer with .5 rounding up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Weighted composite aggregation of component scores.

package scoring

import (
	"fmt"
	"math"

	serr "seolens-mcp/internal/errors"
)

// Aggregate sums weighted, normalized component scores into a 0-100 composite
// for one aggregatable audit type. Every required component must be present;
// a missing component fails with INCOMPLETE_COMPONENT_SET rather than being
// treated as zero.
func Aggregate(t AuditType, scores []ComponentScore) (int, error) {
	weights, ok := auditWeights[t]
	if !ok {
		return 0, serr.NewInvalidInput(
			fmt.Sprintf("audit type %q is not aggregatable", t),
			"use technical, content, or ai_visibility; overall reports aggregate per section", nil)
	}

	byComponent := make(map[Component]ComponentScore, len(scores))
	for _, s := range scores {
		if _, dup := byComponent[s.Component]; dup {
			return 0, serr.NewInvalidInput("duplicate component score", "", map[string]any{"component": string(s.Component)})
		}
		if s.Max <= 0 || s.Raw < 0 || s.Raw > s.Max {
			return 0, serr.NewInvalidMeasurement("component score outside [0,max]", map[string]any{
				"component": string(s.Component), "score": s.Raw, "max": s.Max,
			})
		}
		byComponent[s.Component] = s
	}

	var missing []string
	var sum float64
	for _, c := range RequiredComponents(t) {
		s, ok := byComponent[c]
		if !ok {
			missing = append(missing, string(c))
			continue
		}
		sum += s.Raw / s.Max * weights[c]
	}
	if len(missing) > 0 {
		return 0, serr.NewIncompleteComponentSet(
			fmt.Sprintf("audit type %s is missing %d required component(s)", t, len(missing)), missing)
	}

	overall := roundHalfUp(sum)
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	return overall, nil
}

// roundHalfUp rounds to the nearest integer with .5 rounding up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

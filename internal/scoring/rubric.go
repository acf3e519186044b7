// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Rubric-as-data: the documented point tables exposed for tools/resources.

package scoring

import serr "seolens-mcp/internal/errors"

// RubricEntry describes how one component is scored.
type RubricEntry struct {
	Component Component             `json:"component"`
	MaxPoints float64               `json:"max_points"`
	Signals   string                `json:"signals"`
	Policy    string                `json:"policy"`
	Weights   map[AuditType]float64 `json:"weights"`
}

var rubricSignals = map[Component]struct{ signals, policy string }{
	ComponentAISearchPresence:   {"presence: mention_rate, first_position_rate, first_quartile_rate", "banded by mention rate; +2 bonus when first-quartile rate > 50%, capped at max"},
	ComponentResponseAccuracy:   {"accuracy: verified_facts, total_facts", "ceiling from verified-fact ratio minus severity deductions, floored at 0"},
	ComponentLLMParseability:    {"parseability: semantic_markup_rate, schema_coverage", "weighted blend of markup and schema coverage minus severity deductions"},
	ComponentKnowledgeGraph:     {"graph: entities_resolved, entities_expected, has_organization_entity", "resolution ratio out of 12 plus +3 organization-entity bonus, capped at max"},
	ComponentCitationLikelihood: {"citation: cited_responses, total_responses, authority_source_rate", "citation ratio out of 8 plus authority share out of 2"},
	ComponentSentiment:          {"sentiment: responses_sampled, positive_rate, negative_rate", "net tone rescaled onto the point range; zero sampled responses scores 0"},
	ComponentContentQuality:     {"quality: readability, depth, originality", "weighted blend minus severity deductions"},
	ComponentEEAT:               {"eeat: author_byline_rate, credential_rate, citation_density", "weighted blend minus severity deductions"},
	ComponentKeywordPosition:    {"ranking: has_ranking_data, tracked_keywords, top_ten_rate, top_three_rate", "top-10 rate out of 10 plus top-3 rate out of 5; absent data scores 0"},
	ComponentTopicalAuthority:   {"authority: topic_coverage, cluster_depth", "weighted blend of coverage and depth"},
	ComponentBacklinkQuality:    {"backlinks: referring_domains, authority_rate, toxic_rate", "volume and authority blend minus toxicity deduction"},
	ComponentInternalLinking:    {"linking: pages_crawled, orphan_rate, avg_links_per_page, broken_links", "orphan-free share out of 16 plus link depth out of 4 minus 0.5 per broken link; zero crawled pages scores 0"},
}

// Rubric returns the scoring rubric for one component.
func Rubric(c Component) (RubricEntry, error) {
	if !c.Valid() {
		return RubricEntry{}, serr.NewInvalidInput("unknown component", "see rubric list for valid components", map[string]any{"component": string(c)})
	}
	weights := make(map[AuditType]float64)
	for _, t := range SectionTypes() {
		if w, ok := Weight(t, c); ok {
			weights[t] = w
		}
	}
	doc := rubricSignals[c]
	return RubricEntry{
		Component: c,
		MaxPoints: c.MaxPoints(),
		Signals:   doc.signals,
		Policy:    doc.policy,
		Weights:   weights,
	}, nil
}

// Rubrics returns the full rubric table in report order.
func Rubrics() []RubricEntry {
	out := make([]RubricEntry, 0, len(componentOrder))
	for _, c := range componentOrder {
		entry, err := Rubric(c)
		if err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// SeverityPenalties returns the deduction applied per finding severity.
func SeverityPenalties() map[Severity]float64 {
	return map[Severity]float64{
		SeverityCritical: SeverityCritical.Penalty(),
		SeverityHigh:     SeverityHigh.Penalty(),
		SeverityMedium:   SeverityMedium.Penalty(),
		SeverityLow:      SeverityLow.Penalty(),
	}
}

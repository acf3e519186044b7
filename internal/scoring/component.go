// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Package scoring implements the composite scoring and grading engine:
// rubric-based component scoring, weighted aggregation, and grade banding.
package scoring

import "fmt"

// Component is one named, independently scored dimension of an audit.
type Component string

const (
	ComponentAISearchPresence   Component = "ai_search_presence"
	ComponentResponseAccuracy   Component = "response_accuracy"
	ComponentLLMParseability    Component = "llm_parseability"
	ComponentKnowledgeGraph     Component = "knowledge_graph"
	ComponentCitationLikelihood Component = "citation_likelihood"
	ComponentSentiment          Component = "sentiment"
	ComponentContentQuality     Component = "content_quality"
	ComponentEEAT               Component = "eeat"
	ComponentKeywordPosition    Component = "keyword_position"
	ComponentTopicalAuthority   Component = "topical_authority"
	ComponentBacklinkQuality    Component = "backlink_quality"
	ComponentInternalLinking    Component = "internal_linking"
)

func (c Component) Valid() bool {
	_, ok := maxPoints[c]
	return ok
}

// MaxPoints returns the rubric ceiling for the component.
func (c Component) MaxPoints() float64 { return maxPoints[c] }

// maxPoints is the documented rubric ceiling per component. Independent of
// audit-type weights: a component keeps one point scale everywhere, and the
// aggregator normalizes raw/max before applying the weight.
var maxPoints = map[Component]float64{
	ComponentAISearchPresence:   25,
	ComponentResponseAccuracy:   20,
	ComponentLLMParseability:    25,
	ComponentKnowledgeGraph:     15,
	ComponentCitationLikelihood: 10,
	ComponentSentiment:          10,
	ComponentContentQuality:     25,
	ComponentEEAT:               20,
	ComponentKeywordPosition:    15,
	ComponentTopicalAuthority:   15,
	ComponentBacklinkQuality:    15,
	ComponentInternalLinking:    20,
}

// AuditType selects which component set and weight table apply.
type AuditType string

const (
	AuditTechnical    AuditType = "technical"
	AuditContent      AuditType = "content"
	AuditAIVisibility AuditType = "ai_visibility"
	// AuditOverall combines the three section reports; it has no weight table
	// of its own (the overall score is the mean of the section scores).
	AuditOverall AuditType = "overall"
)

func (t AuditType) Valid() bool {
	switch t {
	case AuditTechnical, AuditContent, AuditAIVisibility, AuditOverall:
		return true
	}
	return false
}

// SectionTypes are the aggregatable audit types, in report order.
func SectionTypes() []AuditType {
	return []AuditType{AuditTechnical, AuditContent, AuditAIVisibility}
}

// auditWeights maps each aggregatable audit type to its required component
// set and weights. Weights must sum to exactly 100 per type; verified once
// at init, not per call.
var auditWeights = map[AuditType]map[Component]float64{
	AuditTechnical: {
		ComponentLLMParseability:    25,
		ComponentInternalLinking:    20,
		ComponentKnowledgeGraph:     15,
		ComponentKeywordPosition:    15,
		ComponentBacklinkQuality:    15,
		ComponentCitationLikelihood: 10,
	},
	AuditContent: {
		ComponentContentQuality:   25,
		ComponentEEAT:             20,
		ComponentTopicalAuthority: 15,
		ComponentKeywordPosition:  15,
		ComponentBacklinkQuality:  15,
		ComponentInternalLinking:  10,
	},
	AuditAIVisibility: {
		ComponentAISearchPresence:   25,
		ComponentResponseAccuracy:   20,
		ComponentLLMParseability:    15,
		ComponentKnowledgeGraph:     15,
		ComponentCitationLikelihood: 15,
		ComponentSentiment:          10,
	},
}

// componentOrder fixes the display order of components within a report.
var componentOrder = []Component{
	ComponentAISearchPresence,
	ComponentResponseAccuracy,
	ComponentLLMParseability,
	ComponentKnowledgeGraph,
	ComponentCitationLikelihood,
	ComponentSentiment,
	ComponentContentQuality,
	ComponentEEAT,
	ComponentKeywordPosition,
	ComponentTopicalAuthority,
	ComponentBacklinkQuality,
	ComponentInternalLinking,
}

// RequiredComponents returns the component set for an aggregatable audit
// type, in stable report order. Returns nil for unknown types and for
// AuditOverall (whose requirement is the union of the section sets).
func RequiredComponents(t AuditType) []Component {
	w, ok := auditWeights[t]
	if !ok {
		return nil
	}
	out := make([]Component, 0, len(w))
	for _, c := range componentOrder {
		if _, ok := w[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Weight returns the weighted max for a component within an audit type.
func Weight(t AuditType, c Component) (float64, bool) {
	w, ok := auditWeights[t]
	if !ok {
		return 0, false
	}
	v, ok := w[c]
	return v, ok
}

func init() {
	for t, w := range auditWeights {
		var sum float64
		for c, v := range w {
			if !c.Valid() {
				panic(fmt.Sprintf("scoring: weight table %s references unknown component %q", t, c))
			}
			if v <= 0 {
				panic(fmt.Sprintf("scoring: weight table %s has non-positive weight for %s", t, c))
			}
			sum += v
		}
		if sum != 100 {
			panic(fmt.Sprintf("scoring: weight table %s sums to %v, want 100", t, sum))
		}
	}
}

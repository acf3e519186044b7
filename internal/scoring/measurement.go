// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Tagged-variant measurement payloads and boundary validation.

package scoring

import (
	"fmt"

	serr "seolens-mcp/internal/errors"
)

// Measurement is the raw signal payload for one component. Exactly one
// variant must be set, and it must match Component. Findings are optional
// and deduct from the banded score regardless of component.
//
// Out-of-range signals are rejected, never clamped: silent coercion would
// mask upstream collector bugs.
type Measurement struct {
	Component Component `json:"component"`

	Presence     *PresenceSignals     `json:"presence,omitempty"`
	Accuracy     *AccuracySignals     `json:"accuracy,omitempty"`
	Parseability *ParseabilitySignals `json:"parseability,omitempty"`
	Graph        *GraphSignals        `json:"graph,omitempty"`
	Citation     *CitationSignals     `json:"citation,omitempty"`
	Sentiment    *SentimentSignals    `json:"sentiment,omitempty"`
	Quality      *QualitySignals      `json:"quality,omitempty"`
	EEAT         *EEATSignals         `json:"eeat,omitempty"`
	Ranking      *RankingSignals      `json:"ranking,omitempty"`
	Authority    *AuthoritySignals    `json:"authority,omitempty"`
	Backlinks    *BacklinkSignals     `json:"backlinks,omitempty"`
	Linking      *LinkingSignals      `json:"linking,omitempty"`

	Findings []Finding `json:"findings,omitempty"`
}

// PresenceSignals measures how often AI answers mention the site.
type PresenceSignals struct {
	// MentionRate is the share of sampled AI responses mentioning the site.
	MentionRate float64 `json:"mention_rate"`
	// FirstPositionRate is the share of mentions appearing first.
	FirstPositionRate float64 `json:"first_position_rate"`
	// FirstQuartileRate is the share of mentions within the first 25% of the response.
	FirstQuartileRate float64 `json:"first_quartile_rate"`
}

// AccuracySignals measures fact verification against AI answers about the site.
type AccuracySignals struct {
	VerifiedFacts int `json:"verified_facts"`
	TotalFacts    int `json:"total_facts"`
}

// ParseabilitySignals measures machine-readability of the site's markup.
type ParseabilitySignals struct {
	SemanticMarkupRate float64 `json:"semantic_markup_rate"`
	SchemaCoverage     float64 `json:"schema_coverage"`
}

// GraphSignals measures knowledge-graph entity resolution.
type GraphSignals struct {
	EntitiesResolved      int  `json:"entities_resolved"`
	EntitiesExpected      int  `json:"entities_expected"`
	HasOrganizationEntity bool `json:"has_organization_entity"`
}

// CitationSignals measures how often AI answers cite the site as a source.
type CitationSignals struct {
	CitedResponses      int     `json:"cited_responses"`
	TotalResponses      int     `json:"total_responses"`
	AuthoritySourceRate float64 `json:"authority_source_rate"`
}

// SentimentSignals measures AI answer tone toward the brand. A zero
// ResponsesSampled is zero evidence and scores the minimum; a neutral tone
// over sampled responses is a different measurement from no samples at all.
type SentimentSignals struct {
	ResponsesSampled int     `json:"responses_sampled"`
	PositiveRate     float64 `json:"positive_rate"`
	NegativeRate     float64 `json:"negative_rate"`
}

// QualitySignals measures editorial content quality.
type QualitySignals struct {
	Readability float64 `json:"readability"`
	Depth       float64 `json:"depth"`
	Originality float64 `json:"originality"`
}

// EEATSignals measures experience/expertise/authoritativeness/trust markers.
type EEATSignals struct {
	AuthorBylineRate float64 `json:"author_byline_rate"`
	CredentialRate   float64 `json:"credential_rate"`
	CitationDensity  float64 `json:"citation_density"`
}

// RankingSignals measures organic keyword positions. Ranking-API data may be
// absent entirely; that is a valid zero-evidence measurement, not an error.
type RankingSignals struct {
	HasRankingData  bool    `json:"has_ranking_data"`
	TrackedKeywords int     `json:"tracked_keywords"`
	TopTenRate      float64 `json:"top_ten_rate"`
	TopThreeRate    float64 `json:"top_three_rate"`
}

// AuthoritySignals measures topical cluster coverage.
type AuthoritySignals struct {
	TopicCoverage float64 `json:"topic_coverage"`
	ClusterDepth  float64 `json:"cluster_depth"`
}

// BacklinkSignals measures the inbound link profile.
type BacklinkSignals struct {
	ReferringDomains int     `json:"referring_domains"`
	AuthorityRate    float64 `json:"authority_rate"`
	ToxicRate        float64 `json:"toxic_rate"`
}

// LinkingSignals measures internal link structure. A zero PagesCrawled is
// zero evidence and scores the minimum; an orphan rate of 0 only counts once
// pages were actually crawled.
type LinkingSignals struct {
	PagesCrawled    int     `json:"pages_crawled"`
	OrphanRate      float64 `json:"orphan_rate"`
	AvgLinksPerPage float64 `json:"avg_links_per_page"`
	BrokenLinks     int     `json:"broken_links"`
}

// Validate checks the payload shape and signal ranges. It returns an
// INVALID_MEASUREMENT error on the first violation found.
func (m Measurement) Validate() error {
	if !m.Component.Valid() {
		return serr.NewInvalidMeasurement("unknown component", map[string]any{"component": string(m.Component)})
	}
	set := m.variantsSet()
	if len(set) == 0 {
		return serr.NewInvalidMeasurement("missing signal payload", map[string]any{"component": string(m.Component), "want": variantName(m.Component)})
	}
	if len(set) > 1 {
		return serr.NewInvalidMeasurement("multiple signal payloads set", map[string]any{"component": string(m.Component), "got": fmt.Sprint(set)})
	}
	if set[0] != variantName(m.Component) {
		return serr.NewInvalidMeasurement("signal payload does not match component", map[string]any{"component": string(m.Component), "want": variantName(m.Component), "got": set[0]})
	}
	for _, f := range m.Findings {
		if !f.Severity.Valid() {
			return serr.NewInvalidMeasurement("invalid finding severity", map[string]any{"severity": string(f.Severity)})
		}
	}
	return m.validateSignals()
}

func (m Measurement) variantsSet() []string {
	var set []string
	if m.Presence != nil {
		set = append(set, "presence")
	}
	if m.Accuracy != nil {
		set = append(set, "accuracy")
	}
	if m.Parseability != nil {
		set = append(set, "parseability")
	}
	if m.Graph != nil {
		set = append(set, "graph")
	}
	if m.Citation != nil {
		set = append(set, "citation")
	}
	if m.Sentiment != nil {
		set = append(set, "sentiment")
	}
	if m.Quality != nil {
		set = append(set, "quality")
	}
	if m.EEAT != nil {
		set = append(set, "eeat")
	}
	if m.Ranking != nil {
		set = append(set, "ranking")
	}
	if m.Authority != nil {
		set = append(set, "authority")
	}
	if m.Backlinks != nil {
		set = append(set, "backlinks")
	}
	if m.Linking != nil {
		set = append(set, "linking")
	}
	return set
}

func variantName(c Component) string {
	switch c {
	case ComponentAISearchPresence:
		return "presence"
	case ComponentResponseAccuracy:
		return "accuracy"
	case ComponentLLMParseability:
		return "parseability"
	case ComponentKnowledgeGraph:
		return "graph"
	case ComponentCitationLikelihood:
		return "citation"
	case ComponentSentiment:
		return "sentiment"
	case ComponentContentQuality:
		return "quality"
	case ComponentEEAT:
		return "eeat"
	case ComponentKeywordPosition:
		return "ranking"
	case ComponentTopicalAuthority:
		return "authority"
	case ComponentBacklinkQuality:
		return "backlinks"
	case ComponentInternalLinking:
		return "linking"
	}
	return ""
}

func (m Measurement) validateSignals() error {
	switch m.Component {
	case ComponentAISearchPresence:
		return checkRates(map[string]float64{
			"mention_rate":        m.Presence.MentionRate,
			"first_position_rate": m.Presence.FirstPositionRate,
			"first_quartile_rate": m.Presence.FirstQuartileRate,
		})
	case ComponentResponseAccuracy:
		if err := checkCounts(map[string]int{"verified_facts": m.Accuracy.VerifiedFacts, "total_facts": m.Accuracy.TotalFacts}); err != nil {
			return err
		}
		if m.Accuracy.VerifiedFacts > m.Accuracy.TotalFacts {
			return serr.NewInvalidMeasurement("verified_facts exceeds total_facts", map[string]any{
				"verified_facts": m.Accuracy.VerifiedFacts, "total_facts": m.Accuracy.TotalFacts,
			})
		}
	case ComponentLLMParseability:
		return checkRates(map[string]float64{
			"semantic_markup_rate": m.Parseability.SemanticMarkupRate,
			"schema_coverage":      m.Parseability.SchemaCoverage,
		})
	case ComponentKnowledgeGraph:
		if err := checkCounts(map[string]int{"entities_resolved": m.Graph.EntitiesResolved, "entities_expected": m.Graph.EntitiesExpected}); err != nil {
			return err
		}
		if m.Graph.EntitiesResolved > m.Graph.EntitiesExpected {
			return serr.NewInvalidMeasurement("entities_resolved exceeds entities_expected", map[string]any{
				"entities_resolved": m.Graph.EntitiesResolved, "entities_expected": m.Graph.EntitiesExpected,
			})
		}
	case ComponentCitationLikelihood:
		if err := checkCounts(map[string]int{"cited_responses": m.Citation.CitedResponses, "total_responses": m.Citation.TotalResponses}); err != nil {
			return err
		}
		if m.Citation.CitedResponses > m.Citation.TotalResponses {
			return serr.NewInvalidMeasurement("cited_responses exceeds total_responses", map[string]any{
				"cited_responses": m.Citation.CitedResponses, "total_responses": m.Citation.TotalResponses,
			})
		}
		return checkRates(map[string]float64{"authority_source_rate": m.Citation.AuthoritySourceRate})
	case ComponentSentiment:
		if err := checkCounts(map[string]int{"responses_sampled": m.Sentiment.ResponsesSampled}); err != nil {
			return err
		}
		if err := checkRates(map[string]float64{"positive_rate": m.Sentiment.PositiveRate, "negative_rate": m.Sentiment.NegativeRate}); err != nil {
			return err
		}
		if m.Sentiment.PositiveRate+m.Sentiment.NegativeRate > 1 {
			return serr.NewInvalidMeasurement("positive_rate + negative_rate exceeds 1", map[string]any{
				"positive_rate": m.Sentiment.PositiveRate, "negative_rate": m.Sentiment.NegativeRate,
			})
		}
	case ComponentContentQuality:
		return checkRates(map[string]float64{
			"readability": m.Quality.Readability,
			"depth":       m.Quality.Depth,
			"originality": m.Quality.Originality,
		})
	case ComponentEEAT:
		return checkRates(map[string]float64{
			"author_byline_rate": m.EEAT.AuthorBylineRate,
			"credential_rate":    m.EEAT.CredentialRate,
			"citation_density":   m.EEAT.CitationDensity,
		})
	case ComponentKeywordPosition:
		if err := checkCounts(map[string]int{"tracked_keywords": m.Ranking.TrackedKeywords}); err != nil {
			return err
		}
		if err := checkRates(map[string]float64{"top_ten_rate": m.Ranking.TopTenRate, "top_three_rate": m.Ranking.TopThreeRate}); err != nil {
			return err
		}
		// a top-3 ranking is also a top-10 ranking
		if m.Ranking.TopThreeRate > m.Ranking.TopTenRate {
			return serr.NewInvalidMeasurement("top_three_rate exceeds top_ten_rate", map[string]any{
				"top_three_rate": m.Ranking.TopThreeRate, "top_ten_rate": m.Ranking.TopTenRate,
			})
		}
	case ComponentTopicalAuthority:
		return checkRates(map[string]float64{"topic_coverage": m.Authority.TopicCoverage, "cluster_depth": m.Authority.ClusterDepth})
	case ComponentBacklinkQuality:
		if err := checkCounts(map[string]int{"referring_domains": m.Backlinks.ReferringDomains}); err != nil {
			return err
		}
		return checkRates(map[string]float64{"authority_rate": m.Backlinks.AuthorityRate, "toxic_rate": m.Backlinks.ToxicRate})
	case ComponentInternalLinking:
		if err := checkCounts(map[string]int{"pages_crawled": m.Linking.PagesCrawled, "broken_links": m.Linking.BrokenLinks}); err != nil {
			return err
		}
		if m.Linking.AvgLinksPerPage < 0 {
			return serr.NewInvalidMeasurement("avg_links_per_page is negative", map[string]any{"avg_links_per_page": m.Linking.AvgLinksPerPage})
		}
		return checkRates(map[string]float64{"orphan_rate": m.Linking.OrphanRate})
	}
	return nil
}

func checkRates(rates map[string]float64) error {
	for name, v := range rates {
		if v < 0 || v > 1 {
			return serr.NewInvalidMeasurement(fmt.Sprintf("%s outside [0,1]", name), map[string]any{name: v})
		}
	}
	return nil
}

func checkCounts(counts map[string]int) error {
	for name, v := range counts {
		if v < 0 {
			return serr.NewInvalidMeasurement(fmt.Sprintf("%s is negative", name), map[string]any{name: v})
		}
	}
	return nil
}

// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Unit tests for component rubric scoring.

package scoring

import (
	"testing"

	serr "seolens-mcp/internal/errors"
)

func TestPresenceTopBand(t *testing.T) {
	m := Measurement{
		Component: ComponentAISearchPresence,
		Presence:  &PresenceSignals{MentionRate: 0.85, FirstPositionRate: 0.6},
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 25 || s.Max != 25 {
		t.Fatalf("expected 25/25, got %v/%v", s.Raw, s.Max)
	}
}

func TestPresenceBonusCapsAtMax(t *testing.T) {
	m := Measurement{
		Component: ComponentAISearchPresence,
		Presence:  &PresenceSignals{MentionRate: 0.85, FirstPositionRate: 0.6, FirstQuartileRate: 0.7},
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 25 {
		t.Fatalf("bonus must cap at max, got %v", s.Raw)
	}

	// bonus applies below the cap
	m.Presence = &PresenceSignals{MentionRate: 0.6, FirstQuartileRate: 0.7}
	s, err = Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 22 {
		t.Fatalf("expected band 20 plus bonus 2, got %v", s.Raw)
	}
}

func TestZeroMeasurementsScoreMinimum(t *testing.T) {
	cases := []Measurement{
		{Component: ComponentAISearchPresence, Presence: &PresenceSignals{}},
		{Component: ComponentResponseAccuracy, Accuracy: &AccuracySignals{}},
		{Component: ComponentLLMParseability, Parseability: &ParseabilitySignals{}},
		{Component: ComponentKnowledgeGraph, Graph: &GraphSignals{}},
		{Component: ComponentCitationLikelihood, Citation: &CitationSignals{}},
		{Component: ComponentSentiment, Sentiment: &SentimentSignals{}},
		{Component: ComponentContentQuality, Quality: &QualitySignals{}},
		{Component: ComponentEEAT, EEAT: &EEATSignals{}},
		{Component: ComponentKeywordPosition, Ranking: &RankingSignals{}},
		{Component: ComponentTopicalAuthority, Authority: &AuthoritySignals{}},
		{Component: ComponentBacklinkQuality, Backlinks: &BacklinkSignals{}},
		{Component: ComponentInternalLinking, Linking: &LinkingSignals{}},
	}
	if len(cases) != len(componentOrder) {
		t.Fatalf("zero-measurement cases cover %d of %d components", len(cases), len(componentOrder))
	}
	for _, m := range cases {
		s, err := Score(m)
		if err != nil {
			t.Fatalf("%s: zero measurement must not error: %v", m.Component, err)
		}
		if s.Raw != 0 {
			t.Fatalf("%s: expected minimum score, got %v", m.Component, s.Raw)
		}
	}
}

func TestZeroEvidenceBeatsNeutralReading(t *testing.T) {
	// a neutral tone over sampled responses is not the same as no samples
	neutral := Measurement{
		Component: ComponentSentiment,
		Sentiment: &SentimentSignals{ResponsesSampled: 20, PositiveRate: 0.3, NegativeRate: 0.3},
	}
	s, err := Score(neutral)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 5 {
		t.Fatalf("neutral sampled tone = %v, want 5", s.Raw)
	}

	// an orphan-free crawl only counts once pages were crawled
	crawled := Measurement{
		Component: ComponentInternalLinking,
		Linking:   &LinkingSignals{PagesCrawled: 120, OrphanRate: 0, AvgLinksPerPage: 10},
	}
	s, err = Score(crawled)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 20 {
		t.Fatalf("crawled linking = %v, want 20", s.Raw)
	}
}

func TestAccuracyDeductions(t *testing.T) {
	m := Measurement{
		Component: ComponentResponseAccuracy,
		Accuracy:  &AccuracySignals{VerifiedFacts: 10, TotalFacts: 10},
		Findings: []Finding{
			{Severity: SeverityCritical, Description: "wrong founding year"},
			{Severity: SeverityHigh, Description: "outdated pricing"},
			{Severity: SeverityMedium, Description: "stale team page"},
			{Severity: SeverityLow, Description: "minor address typo"},
		},
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	// ceiling 20 minus 5+3+1+0.5
	if s.Raw != 10.5 {
		t.Fatalf("expected 10.5, got %v", s.Raw)
	}
}

func TestDeductionsFloorAtZero(t *testing.T) {
	findings := make([]Finding, 6)
	for i := range findings {
		findings[i] = Finding{Severity: SeverityCritical, Description: "fabricated claim"}
	}
	m := Measurement{
		Component: ComponentResponseAccuracy,
		Accuracy:  &AccuracySignals{VerifiedFacts: 5, TotalFacts: 10},
		Findings:  findings,
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Raw != 0 {
		t.Fatalf("expected floor at 0, got %v", s.Raw)
	}
}

func TestFindingsSortedMostSevereFirst(t *testing.T) {
	m := Measurement{
		Component: ComponentInternalLinking,
		Linking:   &LinkingSignals{PagesCrawled: 80, OrphanRate: 0.1, AvgLinksPerPage: 8},
		Findings: []Finding{
			{Severity: SeverityLow, Description: "thin anchor text"},
			{Severity: SeverityCritical, Description: "orphaned money pages"},
		},
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if s.Findings[0].Severity != SeverityCritical {
		t.Fatalf("expected critical first, got %s", s.Findings[0].Severity)
	}
}

func TestAbsentRankingDataScoresZero(t *testing.T) {
	m := Measurement{
		Component: ComponentKeywordPosition,
		Ranking:   &RankingSignals{HasRankingData: false, TrackedKeywords: 0},
	}
	s, err := Score(m)
	if err != nil {
		t.Fatalf("absent ranking data must not error: %v", err)
	}
	if s.Raw != 0 {
		t.Fatalf("expected 0, got %v", s.Raw)
	}
}

func TestScoreIdempotent(t *testing.T) {
	m := Measurement{
		Component: ComponentContentQuality,
		Quality:   &QualitySignals{Readability: 0.8, Depth: 0.7, Originality: 0.9},
		Findings:  []Finding{{Severity: SeverityMedium, Description: "duplicated intro paragraphs"}},
	}
	a, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	b, err := Score(m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if a.Raw != b.Raw || a.Max != b.Max {
		t.Fatalf("identical inputs produced %v and %v", a.Raw, b.Raw)
	}
}

func TestRawAlwaysWithinBounds(t *testing.T) {
	rates := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.99, 1}
	for _, r := range rates {
		m := Measurement{
			Component: ComponentAISearchPresence,
			Presence:  &PresenceSignals{MentionRate: r, FirstPositionRate: r, FirstQuartileRate: r},
		}
		s, err := Score(m)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if s.Raw < 0 || s.Raw > s.Max {
			t.Fatalf("rate %v: raw %v outside [0,%v]", r, s.Raw, s.Max)
		}
	}
}

func TestInvalidMeasurementRejected(t *testing.T) {
	cases := map[string]Measurement{
		"negative rate": {
			Component: ComponentAISearchPresence,
			Presence:  &PresenceSignals{MentionRate: -0.1},
		},
		"rate above one": {
			Component: ComponentSentiment,
			Sentiment: &SentimentSignals{ResponsesSampled: 10, PositiveRate: 1.2},
		},
		"negative sample count": {
			Component: ComponentSentiment,
			Sentiment: &SentimentSignals{ResponsesSampled: -1},
		},
		"negative crawl count": {
			Component: ComponentInternalLinking,
			Linking:   &LinkingSignals{PagesCrawled: -1},
		},
		"verified exceeds total": {
			Component: ComponentResponseAccuracy,
			Accuracy:  &AccuracySignals{VerifiedFacts: 11, TotalFacts: 10},
		},
		"top3 exceeds top10": {
			Component: ComponentKeywordPosition,
			Ranking:   &RankingSignals{HasRankingData: true, TrackedKeywords: 10, TopTenRate: 0.2, TopThreeRate: 0.4},
		},
		"missing payload": {
			Component: ComponentKnowledgeGraph,
		},
		"mismatched payload": {
			Component: ComponentKnowledgeGraph,
			Presence:  &PresenceSignals{MentionRate: 0.5},
		},
		"multiple payloads": {
			Component: ComponentSentiment,
			Sentiment: &SentimentSignals{},
			Presence:  &PresenceSignals{},
		},
		"unknown component": {
			Component: Component("page_speed"),
		},
		"bad severity": {
			Component: ComponentEEAT,
			EEAT:      &EEATSignals{},
			Findings:  []Finding{{Severity: Severity("urgent"), Description: "x"}},
		},
	}
	for name, m := range cases {
		_, err := Score(m)
		ae := serr.ToToolError(err)
		if err == nil || ae.Code != serr.CodeInvalidMeasurement {
			t.Fatalf("%s: expected INVALID_MEASUREMENT, got %v", name, err)
		}
	}
}

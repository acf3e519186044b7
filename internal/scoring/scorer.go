// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Rubric band tables and per-component score computation.

package scoring

// ComponentScore is the scored result for one component. Immutable once
// computed; WeightedMax is only set once an audit type is known.
type ComponentScore struct {
	Component   Component `json:"name"`
	Raw         float64   `json:"score"`
	Max         float64   `json:"max"`
	WeightedMax float64   `json:"weighted_max,omitempty"`
	Findings    []Finding `json:"findings"`
}

// Score computes a ComponentScore from a validated measurement. Pure and
// deterministic: no clock, no randomness, no I/O. Zero-valued signals yield
// the component minimum, not an error.
func Score(m Measurement) (ComponentScore, error) {
	if err := m.Validate(); err != nil {
		return ComponentScore{}, err
	}
	base := rawScore(m)
	raw := clamp(base-penaltyTotal(m.Findings), 0, m.Component.MaxPoints())

	findings := make([]Finding, len(m.Findings))
	copy(findings, m.Findings)
	SortFindings(findings)

	return ComponentScore{
		Component: m.Component,
		Raw:       raw,
		Max:       m.Component.MaxPoints(),
		Findings:  findings,
	}, nil
}

// rawScore maps signals to rubric points before finding deductions. Inputs
// are already validated; every branch stays within [0, max].
func rawScore(m Measurement) float64 {
	switch m.Component {
	case ComponentAISearchPresence:
		return presenceScore(*m.Presence)
	case ComponentResponseAccuracy:
		return accuracyScore(*m.Accuracy)
	case ComponentLLMParseability:
		p := m.Parseability
		return (0.6*p.SemanticMarkupRate + 0.4*p.SchemaCoverage) * maxPoints[ComponentLLMParseability]
	case ComponentKnowledgeGraph:
		return graphScore(*m.Graph)
	case ComponentCitationLikelihood:
		return citationScore(*m.Citation)
	case ComponentSentiment:
		return sentimentScore(*m.Sentiment)
	case ComponentContentQuality:
		q := m.Quality
		return (0.4*q.Readability + 0.35*q.Depth + 0.25*q.Originality) * maxPoints[ComponentContentQuality]
	case ComponentEEAT:
		e := m.EEAT
		return (0.4*e.AuthorBylineRate + 0.35*e.CredentialRate + 0.25*e.CitationDensity) * maxPoints[ComponentEEAT]
	case ComponentKeywordPosition:
		return rankingScore(*m.Ranking)
	case ComponentTopicalAuthority:
		a := m.Authority
		return (0.6*a.TopicCoverage + 0.4*a.ClusterDepth) * maxPoints[ComponentTopicalAuthority]
	case ComponentBacklinkQuality:
		return backlinkScore(*m.Backlinks)
	case ComponentInternalLinking:
		return linkingScore(*m.Linking)
	}
	return 0
}

// presenceScore implements the documented mention-rate bands for AI search
// presence, out of 25:
//
//	>=80% mention rate with first position in >=50% of mentions: 25
//	>=80% without frequent first position:                       24
//	60-80%: 20-24    40-60%: 13-19    20-40%: 6-12    <20%: 0-5
//
// Bonus: +2 when mentions land in the first quartile of the response in
// more than 50% of cases. Bonuses always cap at max.
func presenceScore(p PresenceSignals) float64 {
	var pts float64
	switch {
	case p.MentionRate >= 0.8 && p.FirstPositionRate >= 0.5:
		pts = 25
	case p.MentionRate >= 0.8:
		pts = 24
	case p.MentionRate >= 0.6:
		pts = 20 + (p.MentionRate-0.6)/0.2*4
	case p.MentionRate >= 0.4:
		pts = 13 + (p.MentionRate-0.4)/0.2*6
	case p.MentionRate >= 0.2:
		pts = 6 + (p.MentionRate-0.2)/0.2*6
	default:
		pts = p.MentionRate / 0.2 * 5
	}
	if p.FirstQuartileRate > 0.5 {
		pts += 2
	}
	return clamp(pts, 0, maxPoints[ComponentAISearchPresence])
}

// accuracyScore starts from a ceiling proportional to the verified-fact
// ratio; severity deductions are applied by Score afterwards. Zero facts is
// zero evidence, which scores the minimum.
func accuracyScore(a AccuracySignals) float64 {
	if a.TotalFacts == 0 {
		return 0
	}
	ratio := float64(a.VerifiedFacts) / float64(a.TotalFacts)
	return ratio * maxPoints[ComponentResponseAccuracy]
}

func graphScore(g GraphSignals) float64 {
	if g.EntitiesExpected == 0 {
		return 0
	}
	pts := float64(g.EntitiesResolved) / float64(g.EntitiesExpected) * 12
	if g.HasOrganizationEntity {
		pts += 3
	}
	return clamp(pts, 0, maxPoints[ComponentKnowledgeGraph])
}

func citationScore(c CitationSignals) float64 {
	if c.TotalResponses == 0 {
		return 0
	}
	cited := float64(c.CitedResponses) / float64(c.TotalResponses)
	return clamp(cited*8+c.AuthoritySourceRate*2, 0, maxPoints[ComponentCitationLikelihood])
}

// rankingScore treats absent ranking-API data as a valid zero-evidence
// measurement rather than an error.
func rankingScore(r RankingSignals) float64 {
	if !r.HasRankingData || r.TrackedKeywords == 0 {
		return 0
	}
	return clamp(r.TopTenRate*10+r.TopThreeRate*5, 0, maxPoints[ComponentKeywordPosition])
}

// backlinkVolumeCeiling is the referring-domain count treated as full volume.
const backlinkVolumeCeiling = 100

func backlinkScore(b BacklinkSignals) float64 {
	if b.ReferringDomains == 0 {
		return 0
	}
	volume := float64(b.ReferringDomains) / backlinkVolumeCeiling
	if volume > 1 {
		volume = 1
	}
	pts := (0.5*volume + 0.5*b.AuthorityRate) * maxPoints[ComponentBacklinkQuality]
	pts -= b.ToxicRate * 5
	return clamp(pts, 0, maxPoints[ComponentBacklinkQuality])
}

// sentimentScore rescales net tone in [-1,1] onto the point range. Zero
// sampled responses is zero evidence, not a neutral reading.
func sentimentScore(s SentimentSignals) float64 {
	if s.ResponsesSampled == 0 {
		return 0
	}
	net := s.PositiveRate - s.NegativeRate
	return (net + 1) / 2 * maxPoints[ComponentSentiment]
}

// linkingScore rewards orphan-free structure and link depth. Zero crawled
// pages is zero evidence; an orphan rate of 0 does not count on its own.
func linkingScore(l LinkingSignals) float64 {
	if l.PagesCrawled == 0 {
		return 0
	}
	depth := l.AvgLinksPerPage / 10
	if depth > 1 {
		depth = 1
	}
	pts := (1-l.OrphanRate)*16 + depth*4
	pts -= 0.5 * float64(l.BrokenLinks)
	return clamp(pts, 0, maxPoints[ComponentInternalLinking])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

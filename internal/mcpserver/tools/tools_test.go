// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Tool-level tests; run without a database or transport.

package tools

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"seolens-mcp/internal/cache"
	"seolens-mcp/internal/config"
	serr "seolens-mcp/internal/errors"
	"seolens-mcp/internal/safety"
	"seolens-mcp/internal/scoring"
)

func testDeps(cfg config.Config) Dependencies {
	return Dependencies{
		Cache:      cache.New(),
		Logger:     zap.NewNop(),
		Guardrails: safety.NewGuardrails(cfg),
		Config:     cfg,
	}
}

func structuredCode(t *testing.T, sc any) serr.ErrorCode {
	t.Helper()
	m, ok := sc.(map[string]any)
	if !ok {
		t.Fatalf("structured content is %T, want map", sc)
	}
	code, ok := m["code"].(serr.ErrorCode)
	if !ok {
		t.Fatalf("missing code in %v", m)
	}
	return code
}

func TestPingEchoes(t *testing.T) {
	_, out, err := Ping(context.Background(), testDeps(config.Config{}), PingInput{Message: "hello"})
	if err != nil || out.Pong != "hello" {
		t.Fatalf("got %+v, %v", out, err)
	}
	_, out, _ = Ping(context.Background(), testDeps(config.Config{}), PingInput{})
	if out.Pong != "pong" {
		t.Fatalf("default pong, got %q", out.Pong)
	}
}

func TestServerInfo(t *testing.T) {
	cfg := config.Config{Transport: config.TransportStdio, AllowDelete: true}
	_, out, err := ServerInfo(context.Background(), testDeps(cfg))
	if err != nil {
		t.Fatalf("ServerInfo() error = %v", err)
	}
	if out.StorageEnabled || !out.AllowDelete || out.Transport != "stdio" {
		t.Fatalf("got %+v", out)
	}
}

func TestScoreComponentTool(t *testing.T) {
	deps := testDeps(config.Config{})
	input := ScoreComponentInput{Measurement: scoring.Measurement{
		Component: scoring.ComponentAISearchPresence,
		Presence:  &scoring.PresenceSignals{MentionRate: 0.85, FirstPositionRate: 0.6},
	}}
	res, out, err := ScoreComponent(context.Background(), deps, input)
	if err != nil || res != nil {
		t.Fatalf("got %v, %v", res, err)
	}
	if out.Score.Raw != 25 {
		t.Fatalf("score = %v, want 25", out.Score.Raw)
	}
}

func TestScoreComponentToolRejectsInvalid(t *testing.T) {
	deps := testDeps(config.Config{})
	input := ScoreComponentInput{Measurement: scoring.Measurement{
		Component: scoring.ComponentAISearchPresence,
		Presence:  &scoring.PresenceSignals{MentionRate: 1.5},
	}}
	res, _, err := ScoreComponent(context.Background(), deps, input)
	if err != nil {
		t.Fatalf("tool errors are results, not Go errors: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeInvalidMeasurement {
		t.Fatalf("code = %s", code)
	}
}

func TestClassifyScoreTool(t *testing.T) {
	deps := testDeps(config.Config{})
	_, out, err := ClassifyScore(context.Background(), deps, ClassifyScoreInput{Score: 89})
	if err != nil {
		t.Fatalf("ClassifyScore() error = %v", err)
	}
	if out.Band.Grade != scoring.GradeB {
		t.Fatalf("89 graded %s, want B", out.Band.Grade)
	}

	res, _, err := ClassifyScore(context.Background(), deps, ClassifyScoreInput{Score: 140})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result for 140")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeOutOfRangeScore {
		t.Fatalf("code = %s", code)
	}
}

func TestRunAuditSectionReport(t *testing.T) {
	deps := testDeps(config.Config{})
	var ms []scoring.Measurement
	for _, c := range scoring.RequiredComponents(scoring.AuditAIVisibility) {
		ms = append(ms, fullMarksMeasurement(c))
	}
	res, out, err := RunAudit(context.Background(), deps, RunAuditInput{
		Site: "example.com", AuditType: "ai_visibility", Measurements: ms,
	})
	if err != nil || res != nil {
		t.Fatalf("got %v, %v", res, err)
	}
	if out.Report.Overall != 100 || out.Report.Grade != scoring.GradeA {
		t.Fatalf("report = %d/%s", out.Report.Overall, out.Report.Grade)
	}
	if out.AuditID != "" {
		t.Fatalf("unexpected audit id without persist")
	}
}

func TestRunAuditIncompleteSet(t *testing.T) {
	deps := testDeps(config.Config{})
	ms := []scoring.Measurement{fullMarksMeasurement(scoring.ComponentAISearchPresence)}
	res, _, err := RunAudit(context.Background(), deps, RunAuditInput{
		AuditType: "ai_visibility", Measurements: ms,
	})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeIncompleteComponentSet {
		t.Fatalf("code = %s", code)
	}
}

func TestRunAuditPersistWithoutStorage(t *testing.T) {
	deps := testDeps(config.Config{})
	ms := []scoring.Measurement{fullMarksMeasurement(scoring.ComponentAISearchPresence)}
	res, _, err := RunAudit(context.Background(), deps, RunAuditInput{
		AuditType: "ai_visibility", Measurements: ms, Persist: true,
	})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeStorageDisabled {
		t.Fatalf("code = %s", code)
	}
}

func TestRunAuditRateLimited(t *testing.T) {
	deps := testDeps(config.Config{AuditsPerMinute: 1})
	var ms []scoring.Measurement
	for _, c := range scoring.RequiredComponents(scoring.AuditTechnical) {
		ms = append(ms, fullMarksMeasurement(c))
	}
	input := RunAuditInput{AuditType: "technical", Measurements: ms}
	if res, _, _ := RunAudit(context.Background(), deps, input); res != nil {
		t.Fatalf("first audit must pass")
	}
	res, _, _ := RunAudit(context.Background(), deps, input)
	if res == nil || !res.IsError {
		t.Fatalf("expected rate limit result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeRateLimited {
		t.Fatalf("code = %s", code)
	}
}

func TestRunAuditUnknownType(t *testing.T) {
	deps := testDeps(config.Config{})
	res, _, _ := RunAudit(context.Background(), deps, RunAuditInput{
		AuditType: "vibes", Measurements: []scoring.Measurement{fullMarksMeasurement(scoring.ComponentSentiment)},
	})
	if res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
}

func TestDescribeRubric(t *testing.T) {
	deps := testDeps(config.Config{})
	_, out, err := DescribeRubric(context.Background(), deps, DescribeRubricInput{})
	if err != nil {
		t.Fatalf("DescribeRubric() error = %v", err)
	}
	if len(out.Rubrics) != 12 {
		t.Fatalf("expected 12 rubric entries, got %d", len(out.Rubrics))
	}
	if len(out.GradeBands) != 5 {
		t.Fatalf("expected 5 grade bands, got %d", len(out.GradeBands))
	}

	_, single, err := DescribeRubric(context.Background(), deps, DescribeRubricInput{Component: "eeat"})
	if err != nil {
		t.Fatalf("DescribeRubric(eeat) error = %v", err)
	}
	if len(single.Rubrics) != 1 || single.Rubrics[0].Component != scoring.ComponentEEAT {
		t.Fatalf("got %+v", single.Rubrics)
	}

	res, _, _ := DescribeRubric(context.Background(), deps, DescribeRubricInput{Component: "page_speed"})
	if res == nil || !res.IsError {
		t.Fatalf("expected error result for unknown component")
	}
}

func TestDeleteAuditWithoutStorage(t *testing.T) {
	deps := testDeps(config.Config{})
	res, _, _ := DeleteAudit(context.Background(), deps, DeleteAuditInput{AuditID: "abc"})
	if res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeStorageDisabled {
		t.Fatalf("code = %s", code)
	}
}

func TestRequestApprovalTokenDeleteDisabled(t *testing.T) {
	deps := testDeps(config.Config{})
	res, _, _ := RequestApprovalToken(context.Background(), deps, RequestApprovalTokenInput{AuditID: "abc"})
	if res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeDeleteDisabled {
		t.Fatalf("code = %s", code)
	}
}

func TestRequestApprovalToken(t *testing.T) {
	deps := testDeps(config.Config{AllowDelete: true, ApprovalSecret: "secret"})
	_, out, err := RequestApprovalToken(context.Background(), deps, RequestApprovalTokenInput{AuditID: "abc"})
	if err != nil {
		t.Fatalf("RequestApprovalToken() error = %v", err)
	}
	if out.Token == "" || out.Action != "delete_audit:abc" {
		t.Fatalf("got %+v", out)
	}
}

func TestGetAuditStorageDisabled(t *testing.T) {
	deps := testDeps(config.Config{})
	res, _, _ := GetAudit(context.Background(), deps, GetAuditInput{AuditID: "abc"})
	if res == nil || !res.IsError {
		t.Fatalf("expected error result")
	}
	if code := structuredCode(t, res.StructuredContent); code != serr.CodeStorageDisabled {
		t.Fatalf("code = %s", code)
	}
}

func TestNormalizeLimitOffset(t *testing.T) {
	cfg := config.Config{MaxRows: 200}
	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 200, 0},
		{-5, -3, 200, 0},
		{50, 10, 50, 10},
		{999, 0, 200, 0},
	}
	for _, tc := range cases {
		gotLimit, gotOffset := normalizeLimitOffset(cfg, tc.limit, tc.offset)
		if gotLimit != tc.wantLimit || gotOffset != tc.wantOffset {
			t.Fatalf("normalizeLimitOffset(%d,%d) = %d,%d", tc.limit, tc.offset, gotLimit, gotOffset)
		}
	}
}

// fullMarksMeasurement returns a measurement that scores the component ceiling.
func fullMarksMeasurement(c scoring.Component) scoring.Measurement {
	m := scoring.Measurement{Component: c}
	switch c {
	case scoring.ComponentAISearchPresence:
		m.Presence = &scoring.PresenceSignals{MentionRate: 1, FirstPositionRate: 1}
	case scoring.ComponentResponseAccuracy:
		m.Accuracy = &scoring.AccuracySignals{VerifiedFacts: 10, TotalFacts: 10}
	case scoring.ComponentLLMParseability:
		m.Parseability = &scoring.ParseabilitySignals{SemanticMarkupRate: 1, SchemaCoverage: 1}
	case scoring.ComponentKnowledgeGraph:
		m.Graph = &scoring.GraphSignals{EntitiesResolved: 10, EntitiesExpected: 10, HasOrganizationEntity: true}
	case scoring.ComponentCitationLikelihood:
		m.Citation = &scoring.CitationSignals{CitedResponses: 10, TotalResponses: 10, AuthoritySourceRate: 1}
	case scoring.ComponentSentiment:
		m.Sentiment = &scoring.SentimentSignals{ResponsesSampled: 20, PositiveRate: 1}
	case scoring.ComponentContentQuality:
		m.Quality = &scoring.QualitySignals{Readability: 1, Depth: 1, Originality: 1}
	case scoring.ComponentEEAT:
		m.EEAT = &scoring.EEATSignals{AuthorBylineRate: 1, CredentialRate: 1, CitationDensity: 1}
	case scoring.ComponentKeywordPosition:
		m.Ranking = &scoring.RankingSignals{HasRankingData: true, TrackedKeywords: 50, TopTenRate: 1, TopThreeRate: 1}
	case scoring.ComponentTopicalAuthority:
		m.Authority = &scoring.AuthoritySignals{TopicCoverage: 1, ClusterDepth: 1}
	case scoring.ComponentBacklinkQuality:
		m.Backlinks = &scoring.BacklinkSignals{ReferringDomains: 100, AuthorityRate: 1}
	case scoring.ComponentInternalLinking:
		m.Linking = &scoring.LinkingSignals{PagesCrawled: 100, OrphanRate: 0, AvgLinksPerPage: 10}
	}
	return m
}

// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Implements the score_component and classify_score tools.

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"seolens-mcp/internal/scoring"
)

// ScoreComponentInput wraps a single measurement payload.
type ScoreComponentInput struct {
	Measurement scoring.Measurement `json:"measurement" jsonschema:"required"`
}

type ScoreComponentOutput struct {
	Score scoring.ComponentScore `json:"score"`
}

func ScoreComponent(ctx context.Context, deps Dependencies, input ScoreComponentInput) (*mcp.CallToolResult, ScoreComponentOutput, error) {
	score, err := scoring.Score(input.Measurement)
	if err != nil {
		deps.Logger.Debug("score_component rejected", zap.String("component", string(input.Measurement.Component)), zap.Error(err))
		return callError(err), ScoreComponentOutput{}, nil
	}
	return nil, ScoreComponentOutput{Score: score}, nil
}

// ClassifyScore tool

type ClassifyScoreInput struct {
	Score int `json:"score" jsonschema:"composite score in [0,100]"`
}

type ClassifyScoreOutput struct {
	Band scoring.GradeBand `json:"band"`
}

func ClassifyScore(ctx context.Context, deps Dependencies, input ClassifyScoreInput) (*mcp.CallToolResult, ClassifyScoreOutput, error) {
	band, err := scoring.Classify(input.Score)
	if err != nil {
		return callError(err), ClassifyScoreOutput{}, nil
	}
	return nil, ClassifyScoreOutput{Band: band}, nil
}

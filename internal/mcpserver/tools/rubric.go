// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Implements the describe_rubric tool.

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"seolens-mcp/internal/scoring"
)

type DescribeRubricInput struct {
	// Component limits output to one component; empty returns the full table.
	Component string `json:"component,omitempty"`
}

type DescribeRubricOutput struct {
	Rubrics           []scoring.RubricEntry                     `json:"rubrics"`
	GradeBands        []scoring.GradeBand                       `json:"grade_bands"`
	SeverityPenalties map[scoring.Severity]float64              `json:"severity_penalties"`
	RequiredSets      map[scoring.AuditType][]scoring.Component `json:"required_sets"`
}

func DescribeRubric(ctx context.Context, deps Dependencies, input DescribeRubricInput) (*mcp.CallToolResult, DescribeRubricOutput, error) {
	out := DescribeRubricOutput{
		GradeBands:        scoring.Bands(),
		SeverityPenalties: scoring.SeverityPenalties(),
		RequiredSets:      map[scoring.AuditType][]scoring.Component{},
	}
	for _, t := range scoring.SectionTypes() {
		out.RequiredSets[t] = scoring.RequiredComponents(t)
	}

	if input.Component != "" {
		entry, err := scoring.Rubric(scoring.Component(input.Component))
		if err != nil {
			return callError(err), DescribeRubricOutput{}, nil
		}
		out.Rubrics = []scoring.RubricEntry{entry}
		return nil, out, nil
	}
	out.Rubrics = scoring.Rubrics()
	return nil, out, nil
}

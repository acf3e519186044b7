package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"seolens-mcp/internal/mcpserver/tools"
	"seolens-mcp/internal/scoring"
)

// RegisterAll registers rubric resources with the MCP server: the full
// rubric table plus one resource per component.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddResource(&mcp.Resource{
		URI:         "seolens://rubric",
		Name:        "scoring-rubric",
		Description: "Full scoring rubric: component tables, grade bands, severity penalties",
		MIMEType:    "application/json",
	}, handleRubricTable())

	for _, entry := range scoring.Rubrics() {
		entry := entry
		server.AddResource(&mcp.Resource{
			URI:         fmt.Sprintf("seolens://rubric/%s", entry.Component),
			Name:        fmt.Sprintf("rubric-%s", entry.Component),
			Description: fmt.Sprintf("Scoring rubric for %s", entry.Component),
			MIMEType:    "application/json",
		}, handleRubricEntry(entry))
	}
}

func handleRubricTable() mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		payload := struct {
			Rubrics           []scoring.RubricEntry        `json:"rubrics"`
			GradeBands        []scoring.GradeBand          `json:"grade_bands"`
			SeverityPenalties map[scoring.Severity]float64 `json:"severity_penalties"`
		}{
			Rubrics:           scoring.Rubrics(),
			GradeBands:        scoring.Bands(),
			SeverityPenalties: scoring.SeverityPenalties(),
		}
		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: "seolens://rubric", MIMEType: "application/json", Text: string(b)},
			},
		}, nil
	}
}

func handleRubricEntry(entry scoring.RubricEntry) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		b, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: fmt.Sprintf("seolens://rubric/%s", entry.Component), MIMEType: "application/json", Text: string(b)},
			},
		}, nil
	}
}

// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Implements the run_audit tool: concurrent component scoring, aggregation,
// grading, and optional persistence.

package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	serr "seolens-mcp/internal/errors"
	"seolens-mcp/internal/fanout"
	"seolens-mcp/internal/report"
	"seolens-mcp/internal/scoring"
	"seolens-mcp/internal/store"
)

type RunAuditInput struct {
	Site         string                `json:"site,omitempty" jsonschema:"audited site hostname"`
	AuditType    string                `json:"audit_type" jsonschema:"required,one of technical|content|ai_visibility|overall"`
	Measurements []scoring.Measurement `json:"measurements" jsonschema:"required"`
	Persist      bool                  `json:"persist,omitempty" jsonschema:"persist the report (requires storage)"`
}

type RunAuditOutput struct {
	AuditID string         `json:"audit_id,omitempty"`
	Report  *report.Report `json:"report"`
}

func RunAudit(ctx context.Context, deps Dependencies, input RunAuditInput) (*mcp.CallToolResult, RunAuditOutput, error) {
	if err := deps.Guardrails.RequireAuditAllowed(); err != nil {
		return callError(err), RunAuditOutput{}, nil
	}

	t := scoring.AuditType(input.AuditType)
	if !t.Valid() {
		return callError(serr.NewInvalidInput("unknown audit_type", "use technical, content, ai_visibility, or overall", map[string]any{"audit_type": input.AuditType})), RunAuditOutput{}, nil
	}
	if len(input.Measurements) == 0 {
		return callError(serr.NewInvalidInput("measurements required", "supply one measurement per required component", nil)), RunAuditOutput{}, nil
	}
	if input.Persist && deps.Store == nil {
		return callError(serr.NewStorageDisabled()), RunAuditOutput{}, nil
	}

	// Components are independent; score them concurrently.
	scores, err := fanout.Fanout(ctx, input.Measurements, func(ctx context.Context, m scoring.Measurement) (scoring.ComponentScore, error) {
		return scoring.Score(m)
	})
	if err != nil {
		return callError(err), RunAuditOutput{}, nil
	}

	rep, err := report.Build(t, input.Site, scores, time.Now().UTC())
	if err != nil {
		return callError(err), RunAuditOutput{}, nil
	}

	out := RunAuditOutput{Report: rep}
	if input.Persist {
		raw, err := json.Marshal(rep)
		if err != nil {
			return callError(serr.NewInternal(err)), RunAuditOutput{}, nil
		}
		id, err := deps.Store.Save(ctx, store.AuditRecord{
			Site:      input.Site,
			AuditType: string(t),
			Overall:   rep.Overall,
			Grade:     string(rep.Grade),
			Report:    raw,
		})
		if err != nil {
			return callError(err), RunAuditOutput{}, nil
		}
		out.AuditID = id
		if deps.Config.EnableCaching && deps.Cache != nil {
			deps.Cache.Set("audit:"+id, rep, time.Duration(deps.Config.CacheTTLSeconds)*time.Second)
		}
	}

	deps.Logger.Info("audit scored",
		zap.String("site", input.Site),
		zap.String("audit_type", string(t)),
		zap.Int("overall", rep.Overall),
		zap.String("grade", string(rep.Grade)),
		zap.String("audit_id", out.AuditID),
	)
	return nil, out, nil
}

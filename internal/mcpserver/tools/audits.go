// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Implements persisted-audit tools: get, list, delete, approval minting.

package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	serr "seolens-mcp/internal/errors"
	"seolens-mcp/internal/report"
)

// GetAudit tool

type GetAuditInput struct {
	AuditID string `json:"audit_id" jsonschema:"required"`
}

type GetAuditOutput struct {
	Report *report.Report `json:"report"`
}

func GetAudit(ctx context.Context, deps Dependencies, input GetAuditInput) (*mcp.CallToolResult, GetAuditOutput, error) {
	if input.AuditID == "" {
		return callError(serr.NewInvalidInput("audit_id required", "", nil)), GetAuditOutput{}, nil
	}
	if deps.Store == nil {
		return callError(serr.NewStorageDisabled()), GetAuditOutput{}, nil
	}

	key := "audit:" + input.AuditID
	if deps.Config.EnableCaching && deps.Cache != nil {
		if v, ok := deps.Cache.Get(key); ok {
			if rep, ok := v.(*report.Report); ok {
				return nil, GetAuditOutput{Report: rep}, nil
			}
		}
	}

	rec, err := deps.Store.Get(ctx, input.AuditID)
	if err != nil {
		return callError(err), GetAuditOutput{}, nil
	}
	var rep report.Report
	if err := json.Unmarshal(rec.Report, &rep); err != nil {
		return callError(serr.NewInternal(err)), GetAuditOutput{}, nil
	}
	if deps.Config.EnableCaching && deps.Cache != nil {
		deps.Cache.Set(key, &rep, time.Duration(deps.Config.CacheTTLSeconds)*time.Second)
	}
	return nil, GetAuditOutput{Report: &rep}, nil
}

// ListAudits tool

type ListAuditsInput struct {
	Site   string `json:"site,omitempty" jsonschema:"filter by site"`
	Limit  int    `json:"limit,omitempty" jsonschema:"min=1"`
	Offset int    `json:"offset,omitempty" jsonschema:"min=0"`
}

// AuditSummary is one row in the audit history listing.
type AuditSummary struct {
	ID        string    `json:"id"`
	Site      string    `json:"site"`
	AuditType string    `json:"audit_type"`
	Overall   int       `json:"overall"`
	Grade     string    `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
}

type ListAuditsOutput struct {
	Audits []AuditSummary `json:"audits"`
	Meta   Meta           `json:"meta"`
}

// Meta contains pagination metadata.
type Meta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

func ListAudits(ctx context.Context, deps Dependencies, input ListAuditsInput) (*mcp.CallToolResult, ListAuditsOutput, error) {
	if deps.Store == nil {
		return callError(serr.NewStorageDisabled()), ListAuditsOutput{}, nil
	}
	limit, offset := normalizeLimitOffset(deps.Config, input.Limit, input.Offset)
	recs, total, err := deps.Store.List(ctx, input.Site, limit, offset)
	if err != nil {
		return callError(err), ListAuditsOutput{}, nil
	}
	audits := make([]AuditSummary, 0, len(recs))
	for _, rec := range recs {
		audits = append(audits, AuditSummary{
			ID:        rec.ID,
			Site:      rec.Site,
			AuditType: rec.AuditType,
			Overall:   rec.Overall,
			Grade:     rec.Grade,
			CreatedAt: rec.CreatedAt,
		})
	}
	return nil, ListAuditsOutput{Audits: audits, Meta: Meta{Limit: limit, Offset: offset, Total: total}}, nil
}

// DeleteAudit tool

type DeleteAuditInput struct {
	AuditID       string `json:"audit_id" jsonschema:"required"`
	ApprovalToken string `json:"approval_token" jsonschema:"required"`
}

type DeleteAuditOutput struct {
	Status string `json:"status"`
}

func DeleteAudit(ctx context.Context, deps Dependencies, input DeleteAuditInput) (*mcp.CallToolResult, DeleteAuditOutput, error) {
	if input.AuditID == "" {
		return callError(serr.NewInvalidInput("audit_id required", "", nil)), DeleteAuditOutput{}, nil
	}
	if deps.Store == nil {
		return callError(serr.NewStorageDisabled()), DeleteAuditOutput{}, nil
	}
	if err := deps.Guardrails.RequireDeleteAllowed(input.ApprovalToken, deleteAction(input.AuditID)); err != nil {
		return callError(err), DeleteAuditOutput{}, nil
	}
	if err := deps.Store.Delete(ctx, input.AuditID); err != nil {
		return callError(err), DeleteAuditOutput{}, nil
	}
	if deps.Cache != nil {
		deps.Cache.Delete("audit:" + input.AuditID)
	}
	deps.Logger.Info("audit deleted", zap.String("audit_id", input.AuditID))
	return nil, DeleteAuditOutput{Status: "ok"}, nil
}

// RequestApprovalToken tool

type RequestApprovalTokenInput struct {
	AuditID string `json:"audit_id" jsonschema:"required,audit the token will authorize deleting"`
}

type RequestApprovalTokenOutput struct {
	Token  string `json:"token"`
	Action string `json:"action"`
}

func RequestApprovalToken(ctx context.Context, deps Dependencies, input RequestApprovalTokenInput) (*mcp.CallToolResult, RequestApprovalTokenOutput, error) {
	if input.AuditID == "" {
		return callError(serr.NewInvalidInput("audit_id required", "", nil)), RequestApprovalTokenOutput{}, nil
	}
	action := deleteAction(input.AuditID)
	token, err := deps.Guardrails.GenerateApprovalToken(action)
	if err != nil {
		return callError(err), RequestApprovalTokenOutput{}, nil
	}
	return nil, RequestApprovalTokenOutput{Token: token, Action: action}, nil
}

func deleteAction(auditID string) string { return "delete_audit:" + auditID }

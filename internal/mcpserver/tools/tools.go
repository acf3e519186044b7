package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"seolens-mcp/internal/cache"
	"seolens-mcp/internal/config"
	serr "seolens-mcp/internal/errors"
	"seolens-mcp/internal/safety"
	"seolens-mcp/internal/store"
	"seolens-mcp/internal/version"
)

type Dependencies struct {
	Store      *store.Store // nil when persistence is disabled
	Cache      *cache.Cache
	Logger     *zap.Logger
	Guardrails *safety.Guardrails
	Config     config.Config
}

func Register(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "ping the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
		return Ping(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "server_info", Description: "returns server metadata and capabilities"}, func(ctx context.Context, req *mcp.CallToolRequest, input ServerInfoInput) (*mcp.CallToolResult, ServerInfoOutput, error) {
		return ServerInfo(ctx, deps)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "score_component", Description: "scores one audit component from its measurement payload"}, func(ctx context.Context, req *mcp.CallToolRequest, input ScoreComponentInput) (*mcp.CallToolResult, ScoreComponentOutput, error) {
		return ScoreComponent(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "run_audit", Description: "scores a full measurement set, aggregates, grades, and optionally persists the report"}, func(ctx context.Context, req *mcp.CallToolRequest, input RunAuditInput) (*mcp.CallToolResult, RunAuditOutput, error) {
		return RunAudit(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "classify_score", Description: "maps a 0-100 score to its grade band"}, func(ctx context.Context, req *mcp.CallToolRequest, input ClassifyScoreInput) (*mcp.CallToolResult, ClassifyScoreOutput, error) {
		return ClassifyScore(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "describe_rubric", Description: "returns the documented rubric: bands, weights, penalties"}, func(ctx context.Context, req *mcp.CallToolRequest, input DescribeRubricInput) (*mcp.CallToolResult, DescribeRubricOutput, error) {
		return DescribeRubric(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_audit", Description: "fetches a persisted audit report by id"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetAuditInput) (*mcp.CallToolResult, GetAuditOutput, error) {
		return GetAudit(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "list_audits", Description: "lists persisted audit runs newest first"}, func(ctx context.Context, req *mcp.CallToolRequest, input ListAuditsInput) (*mcp.CallToolResult, ListAuditsOutput, error) {
		return ListAudits(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "delete_audit", Description: "deletes a persisted audit (approval required)"}, func(ctx context.Context, req *mcp.CallToolRequest, input DeleteAuditInput) (*mcp.CallToolResult, DeleteAuditOutput, error) {
		return DeleteAudit(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "request_approval_token", Description: "mints a short-lived approval token for a destructive action"}, func(ctx context.Context, req *mcp.CallToolRequest, input RequestApprovalTokenInput) (*mcp.CallToolResult, RequestApprovalTokenOutput, error) {
		return RequestApprovalToken(ctx, deps, input)
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return nil, PingOutput{Pong: msg}, nil
}

// ServerInfo tool

type ServerInfoInput struct{}

type ServerInfoOutput struct {
	Version        version.BuildInfo `json:"version"`
	StorageEnabled bool              `json:"storage_enabled"`
	AllowDelete    bool              `json:"allow_delete"`
	Transport      string            `json:"transport"`
}

func ServerInfo(ctx context.Context, deps Dependencies) (*mcp.CallToolResult, ServerInfoOutput, error) {
	return nil, ServerInfoOutput{
		Version:        version.Info(),
		StorageEnabled: deps.Config.StorageEnabled(),
		AllowDelete:    deps.Config.AllowDelete,
		Transport:      string(deps.Config.Transport),
	}, nil
}

// Helper error creation
func callError(err error) *mcp.CallToolResult {
	ae := serr.ToToolError(err)
	errObj := map[string]any{"code": ae.Code, "message": ae.Message}
	if ae.Hint != "" {
		errObj["hint"] = ae.Hint
	}
	if len(ae.Details) > 0 {
		errObj["details"] = ae.Details
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", ae.Code, ae.Message)},
		},
	}
}

func normalizeLimitOffset(cfg config.Config, limit, offset int) (int, int) {
	if limit <= 0 {
		limit = cfg.MaxRows
	}
	if limit > cfg.MaxRows {
		limit = cfg.MaxRows
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

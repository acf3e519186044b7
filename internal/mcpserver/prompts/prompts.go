package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"seolens-mcp/internal/mcpserver/tools"
	"seolens-mcp/internal/scoring"
)

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{Name: "/audit.full_audit", Title: "Full audit workflow", Description: "Step-by-step guidance for collecting measurements and running an overall audit"}, promptFullAudit(deps))
	server.AddPrompt(&mcp.Prompt{Name: "/audit.interpret_report", Title: "Interpret an audit report", Description: "Checklist for reading grades, component scores, and findings"}, promptInterpretReport(deps))
	server.AddPrompt(&mcp.Prompt{Name: "/audit.component_deep_dive", Title: "Component deep dive", Description: "Investigate one weak component against its rubric"}, promptComponentDeepDive(deps))
}

func promptFullAudit(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString("### 🔍 Full Audit Workflow\n")
		b.WriteString("1) Review the rubric\nRun: `describe_rubric`\n\n")
		b.WriteString("2) Collect one measurement per required component for each section\n")
		for _, t := range scoring.SectionTypes() {
			b.WriteString(fmt.Sprintf("- %s: ", t))
			names := scoring.RequiredComponents(t)
			parts := make([]string, len(names))
			for i, c := range names {
				parts[i] = string(c)
			}
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString("\n")
		}
		b.WriteString("\n3) Run the audit\n")
		b.WriteString("```json\n{\n  \"site\": \"example.com\",\n  \"audit_type\": \"overall\",\n  \"measurements\": [ … ],\n  \"persist\": true\n}\n```\nRun: `run_audit`\n\n")
		b.WriteString("4) Read the report\n- Overall score and grade band\n- Section breakdown (technical, content, ai_visibility)\n- Recommendations ordered by severity\n\n")
		b.WriteString("Notes:\n- Out-of-range signals are rejected with INVALID_MEASUREMENT; fix the collector instead of clamping.\n- A missing required component fails with INCOMPLETE_COMPONENT_SET.\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise SEO and AI-visibility audit assistant. Provide step-by-step guidance."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Full audit workflow", Messages: messages}, nil
	}
}

func promptInterpretReport(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString("### 📋 Interpreting an Audit Report\n")
		b.WriteString("- [ ] Check `overall` against the grade bands\n")
		b.WriteString("- [ ] Compare section scores; the weakest section sets priorities\n")
		b.WriteString("- [ ] For each component, read `score`/`max` as a fill rate\n")
		b.WriteString("- [ ] Work recommendations top-down; they are ordered most severe first\n\n")

		bands := scoring.Bands()
		bb, _ := json.MarshalIndent(bands, "", "  ")
		b.WriteString("Grade bands:\n```json\n")
		b.Write(bb)
		b.WriteString("\n```\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise audit-report analyst. Provide checklists and actionable next steps."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Interpret an audit report", Messages: messages}, nil
	}
}

func promptComponentDeepDive(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		component := ""
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			component = strings.TrimSpace(req.Params.Arguments["component"])
		}

		if component == "" {
			msg := "### 🧩 Component Deep Dive\n- Provide `component` argument (e.g. ai_search_presence).\n- Example: get_prompt /audit.component_deep_dive arguments:{\"component\":\"ai_search_presence\"}\n"
			messages := []*mcp.PromptMessage{
				{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: msg}},
			}
			return &mcp.GetPromptResult{Description: "Provide component argument", Messages: messages}, nil
		}

		var b strings.Builder
		b.WriteString("### 🧩 Component Deep Dive\n")
		b.WriteString(fmt.Sprintf("**Target component**: %s\n\n", component))
		b.WriteString("1) Fetch the rubric\n")
		b.WriteString(fmt.Sprintf("Run: `describe_rubric` with `{\"component\":\"%s\"}`\n", component))
		b.WriteString(fmt.Sprintf("Resource: `seolens://rubric/%s`\n\n", component))

		entry, err := scoring.Rubric(scoring.Component(component))
		if err == nil {
			eb, _ := json.MarshalIndent(entry, "", "  ")
			b.WriteString("```json\n")
			b.Write(eb)
			b.WriteString("\n```\n\n")
		} else {
			b.WriteString(fmt.Sprintf("⚠️ Unknown component: %s\n\n", component))
		}

		b.WriteString("2) Re-score with fresh signals\n")
		b.WriteString(fmt.Sprintf("Run: `score_component` with a `%s` measurement\n\n", component))
		b.WriteString("3) Compare against prior runs\n- `list_audits` then `get_audit` for history\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise audit assistant. Suggest next tools to run."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Component deep dive", Messages: messages}, nil
	}
}

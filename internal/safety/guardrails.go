package safety

import (
	"time"

	"seolens-mcp/internal/config"
	serr "seolens-mcp/internal/errors"
)

type Guardrails struct {
	allowDelete    bool
	approvalSecret string
	approvalTTL    time.Duration
	auditLimiter   *Limiter
}

func NewGuardrails(cfg config.Config) *Guardrails {
	return &Guardrails{
		allowDelete:    cfg.AllowDelete,
		approvalSecret: cfg.ApprovalSecret,
		approvalTTL:    5 * time.Minute,
		auditLimiter:   NewLimiter(cfg.AuditsPerMinute, time.Minute),
	}
}

// RequireDeleteAllowed ensures delete mode is enabled and token is valid.
func (g *Guardrails) RequireDeleteAllowed(token string, action string) error {
	if !g.allowDelete {
		return serr.NewDeleteDisabled()
	}
	if token == "" {
		return serr.NewApprovalRequired(action)
	}
	if err := ValidateApprovalToken(token, action, g.approvalSecret); err != nil {
		return serr.New(serr.CodeApprovalRequired, "invalid approval token", err.Error(), map[string]any{"action": action})
	}
	return nil
}

// RequireAuditAllowed enforces the run_audit rate limit.
func (g *Guardrails) RequireAuditAllowed() error {
	if !g.auditLimiter.Allow() {
		return serr.NewRateLimited("run_audit")
	}
	return nil
}

func (g *Guardrails) GenerateApprovalToken(action string) (string, error) {
	if !g.allowDelete {
		return "", serr.NewDeleteDisabled()
	}
	return GenerateApprovalToken(action, g.approvalTTL, g.approvalSecret)
}

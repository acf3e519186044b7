// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Custom error types and error codes for MCP responses.

package errors

import (
	"fmt"
	"regexp"
	"strings"
)

type ErrorCode string

const (
	CodeInvalidMeasurement     ErrorCode = "INVALID_MEASUREMENT"
	CodeIncompleteComponentSet ErrorCode = "INCOMPLETE_COMPONENT_SET"
	CodeOutOfRangeScore        ErrorCode = "OUT_OF_RANGE_SCORE"
	CodeInvalidInput           ErrorCode = "INVALID_INPUT"
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodePermissionDenied       ErrorCode = "PERMISSION_DENIED"
	CodeApprovalRequired       ErrorCode = "APPROVAL_REQUIRED"
	CodeDeleteDisabled         ErrorCode = "DELETE_DISABLED"
	CodeRateLimited            ErrorCode = "RATE_LIMITED"
	CodeStorageDisabled        ErrorCode = "STORAGE_DISABLED"
	CodeInternalError          ErrorCode = "INTERNAL_ERROR"
)

type AuditError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AuditError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code ErrorCode, msg, hint string, details map[string]any) *AuditError {
	return &AuditError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

func NewInvalidMeasurement(msg string, details map[string]any) *AuditError {
	return New(CodeInvalidMeasurement, msg, "fix the measurement payload; signals are never coerced", details)
}

func NewIncompleteComponentSet(msg string, missing []string) *AuditError {
	return New(CodeIncompleteComponentSet, msg, "supply a score for every required component", map[string]any{"missing": strings.Join(missing, ",")})
}

func NewOutOfRangeScore(score int) *AuditError {
	return New(CodeOutOfRangeScore, fmt.Sprintf("score %d outside [0,100]", score), "indicates an aggregator bug upstream", map[string]any{"score": score})
}

func NewInvalidInput(msg, hint string, details map[string]any) *AuditError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewNotFound(kind, id string) *AuditError {
	return New(CodeNotFound, kind+" not found", "", map[string]any{"id": id})
}

func NewPermissionDenied(msg, hint string) *AuditError {
	return New(CodePermissionDenied, msg, hint, nil)
}

func NewDeleteDisabled() *AuditError {
	return New(CodeDeleteDisabled, "delete mode disabled", "set allow_delete=true to enable", nil)
}

func NewApprovalRequired(action string) *AuditError {
	return New(CodeApprovalRequired, "approval token required", "provide short-lived approval token", map[string]any{"action": action})
}

func NewRateLimited(action string) *AuditError {
	return New(CodeRateLimited, "rate limit exceeded", "retry after the current window", map[string]any{"action": action})
}

func NewStorageDisabled() *AuditError {
	return New(CodeStorageDisabled, "audit storage disabled", "configure database_dsn to enable persistence", nil)
}

func NewInternal(err error) *AuditError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to an AuditError;
// unknown errors are wrapped as internal error with scrubbed message.
func ToToolError(err error) *AuditError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AuditError); ok {
		return ae
	}
	return NewInternal(err)
}

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if s, ok := v.(string); ok {
			out[k] = scrub(s)
			continue
		}
		out[k] = v
	}
	return out
}

var (
	dsnCredsRe = regexp.MustCompile(`(postgres(?:ql)?://)[^@\s]+@`)
	kvSecretRe = regexp.MustCompile(`(password|secret)=\S+`)
)

// scrub best-effort masks credentials in DSNs and key=value pairs.
func scrub(s string) string {
	out := dsnCredsRe.ReplaceAllString(s, "${1}***:***@")
	out = kvSecretRe.ReplaceAllString(out, "${1}=***")
	return out
}

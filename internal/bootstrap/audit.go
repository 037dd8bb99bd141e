package bootstrap

import "context"

// AuditLog is one operational audit entry (startup, shutdown, worker events).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

package service

//go:generate mockgen -destination=../../mocks/mock_audit_sink.go -package=mocks github.com/thenoobgamer12/margawellness/internal/clinic/service AuditSink

import (
	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

// AuditSink receives security- and data-relevant events. Implementations must
// not block and must swallow their own failures.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

package worker

import (
	"github.com/spec-kit/user-admin-service/internal/service"
)

// StartAuditWorker registers audit handlers on the event dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}

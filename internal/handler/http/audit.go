package http

import (
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// List handles GET /audit-events
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.AuditFilter{
		Action:      queryString(r, "action"),
		EntityType:  queryString(r, "entity_type"),
		EntityID:    queryString(r, "entity_id"),
		ActorUserID: queryString(r, "actor_user_id"),
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
	}

	results, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

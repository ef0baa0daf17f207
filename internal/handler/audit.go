package handler

import (
	"net/http"

	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
)

// AuditHandler lists the caller's own audit trail.
type AuditHandler struct {
	Audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{Audit: audit}
}

type auditResp struct {
	ID        uint   `json:"id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Action    string `json:"action"`
	Status    int    `json:"status"`
	IP        string `json:"ip"`
	RequestID string `json:"request_id"`
	CreatedAt string `json:"created_at"`
}

func (h *AuditHandler) List(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		util.Fail(c, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		util.Fail(c, err)
		return
	}

	records, total, err := h.Audit.List(c.Request.Context(), ident, offset, limit)
	if err != nil {
		util.Fail(c, err)
		return
	}

	items := make([]auditResp, 0, len(records))
	for _, r := range records {
		items = append(items, auditResp{
			ID:        r.ID,
			Method:    r.Method,
			Path:      r.Path,
			Action:    r.Action,
			Status:    r.Status,
			IP:        r.IP,
			RequestID: r.RequestID,
			CreatedAt: formatTime(r.CreatedAt),
		})
	}

	util.Success(c, http.StatusOK, util.Response{
		"items": items,
		"total": total,
	})
}

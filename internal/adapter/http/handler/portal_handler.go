package handler

import (
	"payment-portal/internal/adapter/http/dto"
	"payment-portal/internal/adapter/http/middleware"
	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/apperror"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortalHandler exposes the server-driven transfer page. Every route runs
// behind JWTAuth.
type PortalHandler struct {
	portal ports.PortalService
}

func NewPortalHandler(portal ports.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// Open handles POST /api/portal/session.
func (h *PortalHandler) Open(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	state, err := h.portal.Open(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Snapshot handles GET /api/portal/session.
func (h *PortalHandler) Snapshot(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	state, err := h.portal.Snapshot(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Close handles DELETE /api/portal/session.
func (h *PortalHandler) Close(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := h.portal.Close(c.Request.Context(), session); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"closed": true})
}

// Recipients handles GET /api/portal/recipients.
func (h *PortalHandler) Recipients(c *gin.Context) {
	response.OK(c, h.portal.Recipients(c.Request.Context()))
}

// Select handles PUT /api/portal/selection.
func (h *PortalHandler) Select(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.SelectRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	state, err := h.portal.Select(c.Request.Context(), session, req.RecipientID)
	if err != nil {
		respondWithState(c, err, state)
		return
	}
	response.OK(c, state)
}

// ClearSelection handles DELETE /api/portal/selection.
func (h *PortalHandler) ClearSelection(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	state, err := h.portal.ClearSelection(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Submit handles POST /api/portal/transfers. Rejections still carry the
// message the page is showing.
func (h *PortalHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}
	dto.SanitizeStruct(&req)

	outcome, err := h.portal.Submit(c.Request.Context(), session, req.Form())
	if outcome == nil {
		if err == nil {
			err = apperror.ErrSessionNotOpen()
		}
		response.Error(c, err)
		return
	}

	body := dto.NewTransferResponse(outcome.Message, outcome.Transfer, outcome.State)
	if err != nil {
		response.ErrorWithData(c, err, body)
		return
	}
	response.OK(c, body)
}

func (h *PortalHandler) session(c *gin.Context) (domain.Session, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return domain.Session{}, false
	}
	return session, true
}

func respondWithState(c *gin.Context, err error, state *domain.PageState) {
	if state == nil {
		response.Error(c, err)
		return
	}
	response.ErrorWithData(c, err, state)
}

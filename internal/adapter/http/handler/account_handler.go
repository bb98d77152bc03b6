package handler

import (
	"payment-portal/internal/adapter/http/dto"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves balance summaries.
type AccountHandler struct {
	accountSvc ports.AccountService
}

func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// GetSummary handles GET /api/account/:user_id.
func (h *AccountHandler) GetSummary(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.accountSvc.GetSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewAccountResponse(summary))
}

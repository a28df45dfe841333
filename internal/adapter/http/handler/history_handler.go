package handler

import (
	"merchant-pos/internal/adapter/http/dto"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/response"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles transaction history and dashboard endpoints.
type HistoryHandler struct {
	historySvc ports.HistoryService
	sessionSvc ports.SessionService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historySvc ports.HistoryService, sessionSvc ports.SessionService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc, sessionSvc: sessionSvc}
}

// ListTransactions handles GET /api/v1/transactions.
func (h *HistoryHandler) ListTransactions(c *gin.Context) {
	txns, err := h.historySvc.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, dto.NewTransactionResponse(t))
	}
	response.OK(c, out)
}

// DailyTotal handles GET /api/v1/dashboard/daily-total.
func (h *HistoryHandler) DailyTotal(c *gin.Context) {
	total, err := h.historySvc.DailyStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DailyTotalResponse{
		TotalMinor: total,
		Total:      domain.FormatAmount(total),
		Currency:   h.sessionSvc.Settings().Currency,
	})
}

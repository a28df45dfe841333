package handler

import (
	"merchant-pos/internal/adapter/http/dto"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"
	"merchant-pos/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles the step-gated sale wizard endpoints.
type SaleHandler struct {
	saleSvc ports.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleSvc ports.SaleService) *SaleHandler {
	return &SaleHandler{saleSvc: saleSvc}
}

func saleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidField("id", "must be a valid sale identifier"))
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/sales.
func (h *SaleHandler) Create(c *gin.Context) {
	draft, err := h.saleSvc.NewSale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SaleResponse{ID: draft.ID.String(), State: string(draft.State)})
}

// SetAmount handles PUT /api/v1/sales/:id/amount.
func (h *SaleHandler) SetAmount(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	quote, err := h.saleSvc.SetAmount(c.Request.Context(), id, req.AmountMinor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewQuoteResponse(quote))
}

// SetCard handles PUT /api/v1/sales/:id/card. Card fields are never echoed
// back in the response.
func (h *SaleHandler) SetCard(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	card := ports.CardInput{
		Number:          req.Number,
		ExpirationMonth: req.ExpirationMonth,
		ExpirationYear:  req.ExpirationYear,
		CVV:             req.CVV,
	}
	if err := h.saleSvc.SetCard(c.Request.Context(), id, card); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"state": "CUSTOMER_ENTRY"})
}

// SetCustomer handles PUT /api/v1/sales/:id/customer.
func (h *SaleHandler) SetCustomer(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	// Billing fields travel to the processor as entered; trim only.
	dto.TrimStruct(&req)

	if err := h.saleSvc.SetCustomer(c.Request.Context(), id, req.ToDomain()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"state": "CUSTOMER_ENTRY"})
}

// Back handles POST /api/v1/sales/:id/back.
func (h *SaleHandler) Back(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	state, err := h.saleSvc.Back(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"state": string(state)})
}

// Submit handles POST /api/v1/sales/:id/submit. The outcome is terminal:
// approved, declined, and failed all end the draft.
func (h *SaleHandler) Submit(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	outcome, err := h.saleSvc.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}

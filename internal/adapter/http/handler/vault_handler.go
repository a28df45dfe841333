package handler

import (
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/response"

	"github.com/gin-gonic/gin"
)

// VaultHandler handles stored customer profile endpoints.
type VaultHandler struct {
	vaultSvc ports.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(vaultSvc ports.VaultService) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc}
}

// ListCustomers handles GET /api/v1/vault/customers?q=<query>.
func (h *VaultHandler) ListCustomers(c *gin.Context) {
	customers, err := h.vaultSvc.ListCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, customers)
}

package handler

import (
	"merchant-pos/internal/adapter/http/dto"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"
	"merchant-pos/pkg/response"

	"github.com/gin-gonic/gin"
)

// MerchantHandler handles profile and settings endpoints.
type MerchantHandler struct {
	sessionSvc ports.SessionService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(sessionSvc ports.SessionService) *MerchantHandler {
	return &MerchantHandler{sessionSvc: sessionSvc}
}

// GetProfile handles GET /api/v1/merchant/profile. The cached profile is
// served when present; a session restored after restart fetches it first.
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	profile := h.sessionSvc.Profile()
	if profile == nil {
		fetched, err := h.sessionSvc.RefreshProfile(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		profile = fetched
	}
	response.OK(c, dto.NewProfileResponse(profile))
}

// RefreshProfile handles POST /api/v1/merchant/profile/refresh.
func (h *MerchantHandler) RefreshProfile(c *gin.Context) {
	profile, err := h.sessionSvc.RefreshProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewProfileResponse(profile))
}

// GetSettings handles GET /api/v1/settings.
func (h *MerchantHandler) GetSettings(c *gin.Context) {
	response.OK(c, h.sessionSvc.Settings())
}

// UpdateSettings handles PUT /api/v1/settings.
func (h *MerchantHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	settings := domain.MerchantSettings{
		Currency:               req.Currency,
		TaxRatePercent:         req.TaxRatePercent,
		HasCompletedOnboarding: req.HasCompletedOnboarding,
	}
	if err := h.sessionSvc.UpdateSettings(c.Request.Context(), settings); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

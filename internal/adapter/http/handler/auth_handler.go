package handler

import (
	"merchant-pos/internal/adapter/http/dto"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"
	"merchant-pos/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles session lifecycle endpoints.
type AuthHandler struct {
	sessionSvc ports.SessionService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionSvc ports.SessionService) *AuthHandler {
	return &AuthHandler{sessionSvc: sessionSvc}
}

// Login handles POST /api/v1/auth/login. The credential fields are passed
// through untouched; the gateway is the authority on what they may contain.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.sessionSvc.Login(c.Request.Context(), domain.Credentials{
		IdentityID:  req.IdentityID,
		SecretKey:   req.SecretKey,
		Environment: domain.Environment(req.Environment),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:   result.Token,
		Expiry:  result.TokenExpiry.Unix(),
		Profile: result.Profile,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessionSvc.SignOut(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"signed_out": true})
}

// Lock handles POST /api/v1/auth/lock.
func (h *AuthHandler) Lock(c *gin.Context) {
	h.sessionSvc.Lock()
	response.OK(c, gin.H{"locked": h.sessionSvc.IsLocked()})
}

// Unlock handles POST /api/v1/auth/unlock.
func (h *AuthHandler) Unlock(c *gin.Context) {
	var req dto.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.sessionSvc.Unlock(c.Request.Context(), req.Passcode); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"locked": false})
}

// SetPasscode handles PUT /api/v1/auth/passcode.
func (h *AuthHandler) SetPasscode(c *gin.Context) {
	var req dto.PasscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.sessionSvc.SetPasscode(c.Request.Context(), req.Passcode); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"passcode_set": true})
}

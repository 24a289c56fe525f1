package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftline/workforce/internal/onboard/service"
	"github.com/shiftline/workforce/pkg/httpx"
	"github.com/shiftline/workforce/pkg/onboardsdk"
	"github.com/shiftline/workforce/pkg/sessionx"
	"github.com/shiftline/workforce/pkg/slogx"
)

type SessionPolicyHandler struct {
	SettingsService *service.SettingsService
}

// HandleGet godoc
//
//	@Summary		Session Policy Endpoint
//	@Description	Return the effective idle-timeout policy. Clients arm their inactivity monitor
//	@Description	from these values; missing or malformed stored settings degrade to the defaults.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	onboardsdk.SessionPolicyResponse	"timeout_minutes, warning_minutes"
//	@Security		BearerAuth
//	@Router			/v1/session/policy [get].
func (h *SessionPolicyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	policy := h.SettingsService.SessionPolicy(r.Context())

	httpx.WriteJSON(w, http.StatusOK, onboardsdk.SessionPolicyResponse{
		TimeoutMinutes: policy.TimeoutMinutes,
		WarningMinutes: policy.WarningMinutes,
	})
}

// HandlePut godoc
//
//	@Summary		Update Session Policy Endpoint
//	@Description	Persist a new idle-timeout policy. Values are clamped to sane bounds and the
//	@Description	clamped result is returned. Admin only.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.SessionPolicyResponse	true	"New policy in minutes"
//	@Success		200		{object}	onboardsdk.SessionPolicyResponse	"timeout_minutes, warning_minutes"
//	@Failure		400		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/session/policy [put].
func (h *SessionPolicyHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req onboardsdk.SessionPolicyResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	updated, err := h.SettingsService.SetSessionPolicy(ctx, sessionx.Policy{
		TimeoutMinutes: req.TimeoutMinutes,
		WarningMinutes: req.WarningMinutes,
	})
	if err != nil {
		log.Error("failed to update session policy", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, onboardsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to update session policy",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, onboardsdk.SessionPolicyResponse{
		TimeoutMinutes: updated.TimeoutMinutes,
		WarningMinutes: updated.WarningMinutes,
	})
}

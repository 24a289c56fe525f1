package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftline/workforce/internal/onboard/service"
	"github.com/shiftline/workforce/pkg/httpx"
	"github.com/shiftline/workforce/pkg/onboardsdk"
	"github.com/shiftline/workforce/pkg/slogx"
)

type SetPasswordHandler struct {
	InviteService *service.InviteService
}

// invalidInviteMsg is what the caller sees for any token-state failure.
// Whether the token is unknown, already used or expired is logged but never
// revealed, so a link cannot be probed for which state it is in.
const invalidInviteMsg = "This invitation link is invalid or has expired. Please ask for a new invitation."

// ServeHTTP godoc
//
//	@Summary		Set Password Endpoint
//	@Description	Consume an invitation token and set the account's password. This is the public
//	@Description	endpoint behind the emailed set-password link.
//	@Description	When validate_only is true the token is checked without being consumed, so the
//	@Description	set-password page can report dead links before the user types anything.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.SetPasswordRequest		true	"Set password request"
//	@Success		200		{object}	onboardsdk.SetPasswordResponse		"success, user_data"
//	@Failure		400		{object}	onboardsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		404		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/set-password [post].
func (h *SetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req onboardsdk.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	httpx.NoCache(w)

	if req.ValidateOnly {
		inv, err := h.InviteService.ValidateToken(ctx, req.Token)
		if err != nil {
			h.writeTokenError(w, r, "validate", err)
			return
		}
		// The pending snapshot rides along so the set-password page can
		// greet the invitee by name before they type anything.
		httpx.WriteJSON(w, http.StatusOK, onboardsdk.SetPasswordResponse{
			Success: true,
			UserData: &onboardsdk.UserData{
				AccountID:     inv.AccountID,
				Email:         inv.Email,
				FullName:      inv.FullName,
				Role:          inv.Role.String(),
				MobileNumber:  inv.MobileNumber,
				StationID:     inv.StationID,
				CenterAddress: inv.CenterAddress,
				Registrar:     inv.Registrar,
			},
		})
		return
	}

	profile, err := h.InviteService.ConsumeToken(ctx, req.Token, req.Password)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ValidationErrorResponse{
				Code:    "validation_error",
				Message: "Invalid request",
				Details: map[string]string{ve.Field: ve.Reason},
			})
			return
		}
		h.writeTokenError(w, r, "consume", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, onboardsdk.SetPasswordResponse{
		Success: true,
		UserData: &onboardsdk.UserData{
			AccountID:     profile.AccountID,
			Email:         profile.Email,
			FullName:      profile.FullName,
			Role:          profile.Role.String(),
			MobileNumber:  profile.MobileNumber,
			StationID:     profile.StationID,
			CenterAddress: profile.CenterAddress,
			Registrar:     profile.Registrar,
		},
	})
}

// writeTokenError maps the token-state taxonomy onto a single outward
// response, logging the distinct cause.
func (h *SetPasswordHandler) writeTokenError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := slogx.FromContext(r.Context())

	var code string
	switch {
	case errors.Is(err, service.ErrInviteNotFound):
		code = "invite_not_found"
	case errors.Is(err, service.ErrInviteAlreadyUsed):
		code = "invite_already_used"
	case errors.Is(err, service.ErrInviteExpired):
		code = "invite_expired"
	default:
		log.Error("invite token operation failed", "op", op, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, onboardsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Something went wrong, please try again",
		})
		return
	}

	log.Info("invite token rejected", "op", op, "code", code)
	httpx.WriteJSON(w, http.StatusNotFound, onboardsdk.ErrorResponse{
		Error:            "invalid_invite",
		ErrorDescription: invalidInviteMsg,
	})
}

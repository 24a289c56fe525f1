package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftline/workforce/internal/onboard/service"
	"github.com/shiftline/workforce/pkg/httpx"
	"github.com/shiftline/workforce/pkg/jwtx"
	"github.com/shiftline/workforce/pkg/onboardsdk"
	"github.com/shiftline/workforce/pkg/slogx"
)

type InviteIssueHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Issue Invitation Endpoint
//	@Description	Issue an invitation token for onboarding a new workforce member. The caller's role
//	@Description	gates which roles may be granted: admins may invite any role, managers may invite
//	@Description	managers and users but never admins.
//	@Description	Re-inviting an email whose previous invite was never completed replaces the old invite.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.InviteRequest			true	"Invite request"
//	@Success		200		{object}	onboardsdk.InviteResponse			"success, token, invite_link, expires_at"
//	@Failure		400		{object}	onboardsdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	onboardsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InviteIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req onboardsdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	accountID := httpx.AccountIDFromCtx(ctx)
	if accountID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, onboardsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
		return
	}

	// Registrar attribution comes from the verified token, never the body.
	registrar := ""
	if claims, ok := ctx.Value(httpx.CtxKeyClaims).(*jwtx.Claims); ok {
		registrar = claims.Email
	}

	issued, err := h.InviteService.IssueInvite(ctx, accountID, service.IssueRequest{
		Email:         req.Email,
		FullName:      req.FullName,
		Role:          req.Role,
		MobileNumber:  req.MobileNumber,
		StationID:     req.StationID,
		CenterAddress: req.CenterAddress,
		Registrar:     registrar,
	})
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ValidationErrorResponse{
				Code:    "validation_error",
				Message: "Invalid invite parameters",
				Details: map[string]string{ve.Field: ve.Reason},
			})
			return
		}
		switch {
		case errors.Is(err, service.ErrForbidden):
			httpx.WriteJSON(w, http.StatusForbidden, onboardsdk.ErrorResponse{
				Error:            "forbidden",
				ErrorDescription: "You are not allowed to issue this invitation",
			})
		case errors.Is(err, service.ErrDuplicateAccount):
			httpx.WriteJSON(w, http.StatusConflict, onboardsdk.ErrorResponse{
				Error:            "duplicate_account",
				ErrorDescription: "An account with this email already exists",
			})
		default:
			log.Error("failed to issue invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, onboardsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to issue invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, onboardsdk.InviteResponse{
		Success:    true,
		Token:      issued.Token,
		InviteLink: issued.InviteLink,
		ExpiresAt:  issued.ExpiresAt.Unix(),
	})
}

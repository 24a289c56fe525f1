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

type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Endpoint
//	@Description	Exchange email and password for a signed access token. Scopes are derived from
//	@Description	the account's role server-side.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		onboardsdk.TokenRequest		true	"Credentials"
//	@Success		200		{object}	onboardsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	onboardsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req onboardsdk.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, onboardsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "email and password are required",
		})
		return
	}

	httpx.NoCache(w)

	token, err := h.TokenService.PasswordGrant(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, onboardsdk.ErrorResponse{
				Error:            "invalid_grant",
				ErrorDescription: "Invalid email or password",
			})
			return
		}
		log.Error("password grant failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, onboardsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to issue token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, onboardsdk.TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

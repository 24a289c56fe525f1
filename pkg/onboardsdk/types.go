package onboardsdk

// ErrorResponse is the standard error envelope returned by the onboarding
// service. Error is a stable machine code, ErrorDescription is for humans.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request validation fails.
// Details maps field name to the reason that field was rejected.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// InviteRequest is the issuer-side payload for POST /v1/invites.
type InviteRequest struct {
	// Email the invite is addressed to. Must be unique among accounts.
	Email string `json:"email"`

	// FullName of the person being onboarded, 2 to 100 characters.
	FullName string `json:"full_name"`

	// Role the new account will hold: "admin", "manager" or "user".
	// Managers may not grant "admin".
	Role string `json:"role"`

	MobileNumber  string `json:"mobile_number,omitempty"`
	StationID     string `json:"station_id,omitempty"`
	CenterAddress string `json:"center_address,omitempty"`
}

// InviteResponse is returned from a successful issuance.
type InviteResponse struct {
	Success bool `json:"success"`

	// Token is the opaque invite token embedded in the set-password link.
	Token string `json:"token"`

	// InviteLink is the full set-password URL sent to the recipient.
	InviteLink string `json:"invite_link"`

	// ExpiresAt is the invite deadline as a Unix timestamp.
	ExpiresAt int64 `json:"expires_at"`
}

// SetPasswordRequest is the consumer-side payload for
// POST /v1/invites/set-password.
//
// With ValidateOnly set the token is checked but not consumed and Password
// may be empty. The set-password page fires this probe on load so the user
// sees token problems before typing a password.
type SetPasswordRequest struct {
	Token        string `json:"token"`
	Password     string `json:"password,omitempty"`
	ValidateOnly bool   `json:"validate_only,omitempty"`
}

// SetPasswordResponse is returned from a successful validation or
// consumption. UserData carries the pending snapshot on a validate-only
// probe and the stored profile after a real consumption.
type SetPasswordResponse struct {
	Success  bool      `json:"success"`
	UserData *UserData `json:"user_data,omitempty"`
}

// UserData is the profile snapshot handed back once the invite has been
// consumed, so the client can log the new user straight in to their
// dashboard context.
type UserData struct {
	AccountID     string `json:"account_id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	MobileNumber  string `json:"mobile_number,omitempty"`
	StationID     string `json:"station_id,omitempty"`
	CenterAddress string `json:"center_address,omitempty"`
	Registrar     string `json:"registrar,omitempty"`
}

// TokenRequest is the password-grant payload for POST /v1/auth/token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the password-grant result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SessionPolicyResponse is the idle-timeout policy served from
// GET /v1/session/policy. Values are minutes.
type SessionPolicyResponse struct {
	TimeoutMinutes int `json:"timeout_minutes"`
	WarningMinutes int `json:"warning_minutes"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

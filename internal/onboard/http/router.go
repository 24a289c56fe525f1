package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shiftline/workforce/internal/onboard/service"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/httpx"
	"github.com/shiftline/workforce/pkg/jwtx"
	"github.com/shiftline/workforce/pkg/slogx"

	_ "github.com/shiftline/workforce/api/onboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	InviteService   *service.InviteService
	TokenService    *service.TokenService
	SettingsService *service.SettingsService
}

func NewRouter(
	signer *jwtx.Signer,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerAuth()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Shiftline Onboarding Service API
//	@version		0.1.0
//	@description	Invitation-based workforce onboarding: role-gated invite issuance, single-use
//	@description	set-password tokens, and the session idle-timeout policy served to clients.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs issued by the password grant endpoint.
//
//	@contact.name				Shiftline Team
//	@contact.url				https://github.com/shiftline/workforce
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	issueHandler := &InviteIssueHandler{InviteService: r.InviteService}
	setPasswordHandler := &SetPasswordHandler{InviteService: r.InviteService}

	// POST /invites - moderate rate limit by account (operator action).
	// The role matrix (admin vs manager grants) is enforced in the
	// service; the scope here only keeps plain users out early.
	securedIssue := httpx.Chain(issueHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("invites:write"),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/invites", securedIssue)

	// POST /invites/set-password - strict rate limit by IP (public,
	// token-guessing surface)
	r.Mux.Handle("POST /v1/invites/set-password",
		httpx.Chain(setPasswordHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	tokenHandler := &TokenHandler{TokenService: r.TokenService}

	// POST /auth/token - strict rate limit by IP (credential attempts)
	r.Mux.Handle("POST /v1/auth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionPolicyHandler{SettingsService: r.SettingsService}

	// GET /session/policy - any authenticated client arms its idle
	// monitor from this
	r.Mux.Handle("GET /v1/session/policy",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	// PUT /session/policy - admin only
	r.Mux.Handle("PUT /v1/session/policy",
		httpx.Chain(http.HandlerFunc(h.HandlePut),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}

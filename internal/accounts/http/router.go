package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/internal/accounts/store"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"

	_ "github.com/harbourlight/accountd/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService         *service.UserService
	AuthService         *service.AuthService
	ConfirmationService *service.ConfirmationService

	// PublicBaseURL, when set, overrides the scheme and host used when
	// building emailed confirmation links. Otherwise links are derived
	// from the incoming request.
	PublicBaseURL string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerUsers()
	r.registerAuth()
	r.registerConfirmations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Account Service API
//	@version		0.1.0
//	@description	User account management service: registration, login with reusable
//	@description	access tokens, public profiles, and email-confirmed password changes.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token from login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	listHandler := &ListHandler{UserService: r.UserService}
	profileHandler := &ProfileHandler{UserService: r.UserService}
	meHandler := &MeHandler{UserService: r.UserService}

	// POST /v1/users - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /v1/users - public listing, moderate rate limit
	r.Mux.Handle("GET /v1/users",
		httpx.Chain(listHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Own-profile endpoints require a bearer token. The literal "me"
	// segment takes precedence over the {handle} wildcard below.
	securedGet := httpx.Chain(http.HandlerFunc(meHandler.HandleGet),
		httpx.AuthnMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedUpdate := httpx.Chain(http.HandlerFunc(meHandler.HandleUpdate),
		httpx.AuthnMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/users/me", securedGet)
	r.Mux.Handle("PUT /v1/users/me", securedUpdate)
	r.Mux.Handle("PATCH /v1/users/me", securedUpdate)

	// GET /v1/users/{handle} - public profile, lenient rate limit
	r.Mux.Handle("GET /v1/users/{handle}",
		httpx.Chain(profileHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	// POST /v1/users/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/users/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerConfirmations() {
	requestHandler := &ConfirmRequestHandler{
		ConfirmationService: r.ConfirmationService,
		PublicBaseURL:       r.PublicBaseURL,
	}
	checkHandler := &ConfirmCheckHandler{ConfirmationService: r.ConfirmationService}
	changeHandler := &ChangePasswordHandler{ConfirmationService: r.ConfirmationService}

	// POST /v1/users/confirm - strict rate limit by IP (sends email)
	r.Mux.Handle("POST /v1/users/confirm",
		httpx.Chain(requestHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /v1/users/confirm/{hash} - moderate rate limit by user
	securedCheck := httpx.Chain(checkHandler,
		httpx.AuthnMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /v1/users/confirm/{hash}", securedCheck)

	// POST /v1/users/confirm/{hash}/changepass - strict rate limit by user
	// (prevents brute forcing confirmation tokens)
	securedChange := httpx.Chain(changeHandler,
		httpx.AuthnMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)
	r.Mux.Handle("POST /v1/users/confirm/{hash}/changepass", securedChange)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

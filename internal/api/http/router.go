package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/httpx"
	"github.com/cardfolio/cardfolio/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      CookieWriter

	store store.Store

	SessionService     *service.SessionService
	CredentialService  *service.CredentialService
	BootstrapService   *service.BootstrapService
	UserService        *service.UserService
	CardService        *service.CardService
	PreferencesService *service.PreferencesService
	OnboardingService  *service.OnboardingService
}

func NewRouter(
	buildVersion string,
	corsOrigin string,
	cookies CookieWriter,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		cookies:      cookies,
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if corsOrigin != "" {
		r.middlewares = append(r.middlewares, httpx.CORS(corsOrigin))
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerBootstrap()
	r.registerAuth()
	r.registerOnboarding()
	r.registerCards()
	r.registerPreferences()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// session wraps a handler with cookie authentication and the shared per-user
// rate limit.
func (r *Router) session(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		SessionMiddleware(r.SessionService, r.cookies),
		httpx.RateLimitByIP(limit),
	)
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{
		BootstrapService: r.BootstrapService,
		SessionService:   r.SessionService,
		Cookies:          r.cookies,
	}

	r.Mux.Handle("GET /api/v1/bootstrap/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /bootstrap - strict rate limit (account creation)
	r.Mux.Handle("POST /api/v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		CredentialService: r.CredentialService,
		SessionService:    r.SessionService,
		UserService:       r.UserService,
		Cookies:           r.cookies,
	}

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Logout works without a valid session so a stale cookie can always be
	// cleared.
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/v1/auth/me",
		r.session(http.HandlerFunc(h.HandleMe), httpx.LenientLimit))
}

func (r *Router) registerOnboarding() {
	h := &OnboardingHandler{OnboardingService: r.OnboardingService}
	r.Mux.Handle("POST /api/v1/onboarding", r.session(h, httpx.ModerateLimit))
}

func (r *Router) registerCards() {
	h := &CardsHandler{CardService: r.CardService}

	r.Mux.Handle("GET /api/v1/cards",
		r.session(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/cards",
		r.session(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/cards/{id}",
		r.session(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/cards/{id}",
		r.session(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/cards/{id}",
		r.session(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerPreferences() {
	h := &PreferencesHandler{PreferencesService: r.PreferencesService}

	r.Mux.Handle("GET /api/v1/preferences",
		r.session(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/preferences",
		r.session(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
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

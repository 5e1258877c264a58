package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/pkg/httpx"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/aussiebroadwan/blog/pkg/slogx"

	_ "github.com/aussiebroadwan/blog/api/blog" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	limits       httpx.RateLimits
	basePath     string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// LegacySaveErrors reports unexpected failures of post mutations as 400
	// with the error text instead of 500.
	LegacySaveErrors bool

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
	PostService  *service.PostService
}

func NewRouter(
	keys *jwtx.KeyManager,
	basePath, buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
	limits httpx.RateLimits,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		limits:       limits,
		basePath:     strings.TrimRight(basePath, "/"),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Logging first so preflight requests are logged too.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Blog API
//	@version		0.1.0
//	@description	Minimal blogging backend: registration, JWT token pairs and posts that only their author can change.
//	@description
//	@description				Access tokens are short lived. Exchange the refresh token at /token/refresh/ for a new one.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/blog
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api
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

// route builds a mux pattern under the base path. Paths end in a slash and
// are anchored so they do not match subtrees.
func (r *Router) route(method, path string) string {
	return method + " " + r.basePath + path + "{$}"
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		TokenService: r.TokenService,
		UserService:  r.UserService,
	}

	// Credential checks and sign-ups - strict rate limit by IP
	r.Mux.Handle(r.route("POST", "/token/"),
		httpx.Chain(http.HandlerFunc(h.HandleToken),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle(r.route("POST", "/register/"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// Refresh happens every few minutes per client - moderate
	r.Mux.Handle(r.route("POST", "/token/refresh/"),
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.limits.Moderate),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}

	r.Mux.Handle(r.route("GET", "/user/"),
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.keys.Verifier),
			httpx.RateLimitByUser(r.limits.Lenient),
		),
	)
}

func (r *Router) registerPosts() {
	h := &PostsHandler{
		PostService:      r.PostService,
		LegacySaveErrors: r.LegacySaveErrors,
	}

	// Anonymous reads; a presented token must still be valid.
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.OptionalAuthnMiddleware(r.keys.Verifier),
			httpx.RateLimitByIP(r.limits.Public),
		)
	}
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.keys.Verifier),
			httpx.RateLimitByUser(r.limits.Moderate),
		)
	}

	r.Mux.Handle(r.route("GET", "/posts/"), public(h.HandleList))
	r.Mux.Handle(r.route("POST", "/posts/"), secured(h.HandleCreate))
	r.Mux.Handle(r.route("GET", "/posts/{id}/"), public(h.HandleRetrieve))
	r.Mux.Handle(r.route("PUT", "/posts/{id}/"), secured(h.HandleUpdate))
	r.Mux.Handle(r.route("PATCH", "/posts/{id}/"), secured(h.HandlePartialUpdate))
	r.Mux.Handle(r.route("DELETE", "/posts/{id}/"), secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}

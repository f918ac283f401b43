package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tallyhq/crm/internal/crm/service"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/httpx"
	"github.com/tallyhq/crm/pkg/jwtx"
	"github.com/tallyhq/crm/pkg/slogx"

	_ "github.com/tallyhq/crm/api/crm" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	TokenService   *service.TokenService
	MFAService     *service.MFAService
	ClientService  *service.ClientService
	ProjectService *service.ProjectService
	InvoiceService *service.InvoiceService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerClients()
	r.registerProjects()
	r.registerInvoices()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tally CRM API
//	@version		0.1.0
//	@description	A small multi-tenant CRM backend: clients, projects and invoices with JWT
//	@description	authentication. Every record belongs to the account that created it and is
//	@description	invisible to every other account.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
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

func (r *Router) registerAuth() {
	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/token - strict rate limit by IP (authentication attempts)
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - moderate rate limit
	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/revoke - moderate rate limit
	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// Strict limit on activate/disable to slow down TOTP brute force.
	securedActivate := httpx.Chain(http.HandlerFunc(h.HandleActivate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)
	securedDisable := httpx.Chain(http.HandlerFunc(h.HandleDisable),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	r.Mux.Handle("POST /v1/mfa/totp/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/mfa/totp/activate", securedActivate)
	r.Mux.Handle("POST /v1/mfa/totp/disable", securedDisable)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.registerCRUD("/v1/clients", crudHandlers{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		del:    h.HandleDelete,
	})
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	r.registerCRUD("/v1/projects", crudHandlers{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		del:    h.HandleDelete,
	})
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{InvoiceService: r.InvoiceService}

	r.registerCRUD("/v1/invoices", crudHandlers{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		del:    h.HandleDelete,
	})
}

type crudHandlers struct {
	create http.HandlerFunc
	list   http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	del    http.HandlerFunc
}

// registerCRUD wires the standard collection/detail verbs with auth and
// per-user rate limits. PUT and PATCH share the partial-update handler.
func (r *Router) registerCRUD(base string, h crudHandlers) {
	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST "+base, secure(h.create))
	r.Mux.Handle("GET "+base, secure(h.list))
	r.Mux.Handle("GET "+base+"/{id}", secure(h.get))
	r.Mux.Handle("PUT "+base+"/{id}", secure(h.update))
	r.Mux.Handle("PATCH "+base+"/{id}", secure(h.update))
	r.Mux.Handle("DELETE "+base+"/{id}", secure(h.del))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /v1/health",
		httpx.Chain(HealthHandler(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

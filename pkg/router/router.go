package router

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"github.com/sfdsa-platform/backend/config"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/pkg/authenticator"
	"github.com/sfdsa-platform/backend/pkg/logger"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context (for
// example to attach the request user id) or abort the request by returning
// an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, regardless of the
// handler outcome.
type CloserFunc func(ctx context.Context)

type routeTable struct {
	// pattern -> method -> handler
	handlers map[string]map[string]http.HandlerFunc
}

type Router struct {
	table *routeTable

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine[model.AccessToken]
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		table:        &routeTable{handlers: make(map[string]map[string]http.HandlerFunc)},
		db:           db,
		cfg:          cfg,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch returns a router sharing the same route table but with an
// independent middleware chain, seeded from the parent's.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.register(http.MethodGet, pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.register(http.MethodPost, pattern, wrapHandler(r, http.MethodPost, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.register(http.MethodPatch, pattern, wrapHandler(r, http.MethodPatch, handler))
}

func (r *Router) register(method, pattern string, handler http.HandlerFunc) {
	if _, ok := r.table.handlers[pattern]; !ok {
		r.table.handlers[pattern] = make(map[string]http.HandlerFunc)
	}

	if _, ok := r.table.handlers[pattern][method]; ok {
		panic("duplicate route " + method + " " + pattern)
	}

	r.table.handlers[pattern][method] = handler
}

// Handler builds the final http.Handler with method dispatch and CORS.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	for pattern, byMethod := range r.table.handlers {
		byMethod := byMethod
		mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
			handler, ok := byMethod[req.Method]
			if !ok {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			handler(w, req)
		})
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}

func (r *Router) newRequestContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}

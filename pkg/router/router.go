package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/koquifi/backend/config"
	"github.com/koquifi/backend/pkg/authenticator"
	"github.com/koquifi/backend/pkg/logger"
	"github.com/koquifi/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can replace the request context, returning nil keeps the
// current one. A returned error skips the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, errors are no longer
// reportable to the client at that point.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	cfg    config.Configs
	db     *gorm.DB
	logger logger.Logger

	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		engine:       gin.New(),
		cfg:          cfg,
		db:           db,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler,
		r.snapshotBefores(), r.snapshotAfters(), r.snapshotClosers()))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler,
		r.snapshotBefores(), r.snapshotAfters(), r.snapshotClosers()))
}

// Branch clones the middleware chains, routes registered afterwards on the
// branch do not affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = r.snapshotBefores()
	clone.afters = r.snapshotAfters()
	clone.closers = r.snapshotClosers()
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.engine.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) snapshotBefores() []MiddlewareFunc {
	return append([]MiddlewareFunc{}, r.befores...)
}

func (r *Router) snapshotAfters() []MiddlewareFunc {
	return append([]MiddlewareFunc{}, r.afters...)
}

func (r *Router) snapshotClosers() []CloserFunc {
	return append([]CloserFunc{}, r.closers...)
}

func (r *Router) baseContext(ginCtx *gin.Context) context.Context {
	ctx := xcontext.WithDB(ginCtx.Request.Context(), r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
	return xcontext.WithResponseTracker(ctx)
}

package xcontext

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/koquifi/backend/config"
	"github.com/koquifi/backend/pkg/authenticator"
	"github.com/koquifi/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey           struct{}
	loggerKey       struct{}
	configsKey      struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	requestKey      struct{}
	writerKey       struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

func DB(ctx context.Context) *gorm.DB {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db
}

// WithDBTransaction replaces the database in context by a began transaction.
// Further calls of DB() get the transaction instead of the original
// connection.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbKey{}, DB(ctx).Begin())
}

// WithCommitDBTransaction commits the transaction in context. The context
// still refers to the committed transaction afterwards, so callers should not
// reuse it for further queries.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	DB(ctx).Commit()
	return ctx
}

// WithRollbackDBTransaction rollbacks the transaction in context. Calling it
// after WithCommitDBTransaction is a no-op, which allows the usual
// defer-rollback pattern.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	DB(ctx).Rollback()
	return ctx
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.ERROR)
	}

	return l
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	if !ok {
		return nil
	}

	return engine
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	store, ok := ctx.Value(sessionStoreKey{}).(sessions.Store)
	if !ok {
		return nil
	}

	return store
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(requestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(writerKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return w
}

package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
	befores, afters []MiddlewareFunc,
	closers []CloserFunc,
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := r.baseContext(ginCtx)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		runRequest(ctx, ginCtx, method, handler, befores, afters)
		handleResponse(ctx)
	}
}

func runRequest[Request, Response any](
	ctx context.Context,
	ginCtx *gin.Context,
	method string,
	handler HandlerFunc[Request, Response],
	befores, afters []MiddlewareFunc,
) {
	for _, middleware := range befores {
		newCtx, err := middleware(ctx)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	var req Request
	var err error
	switch method {
	case http.MethodGet:
		err = ginCtx.ShouldBindQuery(&req)
	default:
		err = ginCtx.ShouldBindJSON(&req)
		// An empty body is a valid empty request.
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}

	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
		return
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		xcontext.SetError(ctx, err)
		return
	}

	xcontext.SetResponse(ctx, resp)

	for _, middleware := range afters {
		newCtx, err := middleware(ctx)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}
}

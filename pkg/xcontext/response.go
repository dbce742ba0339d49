package xcontext

import "context"

type responseTrackerKey struct{}

// responseTracker is a mutable cell shared by everything derived from the
// request context. Handlers and middlewares run with contexts branched at
// different points, the pointer keeps the response and error visible to all
// of them.
type responseTracker struct {
	response any
	err      error
}

func WithResponseTracker(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseTrackerKey{}, &responseTracker{})
}

func SetResponse(ctx context.Context, resp any) {
	if tracker, ok := ctx.Value(responseTrackerKey{}).(*responseTracker); ok {
		tracker.response = resp
	}
}

func GetResponse(ctx context.Context) any {
	if tracker, ok := ctx.Value(responseTrackerKey{}).(*responseTracker); ok {
		return tracker.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if tracker, ok := ctx.Value(responseTrackerKey{}).(*responseTracker); ok {
		tracker.err = err
	}
}

func GetError(ctx context.Context) error {
	if tracker, ok := ctx.Value(responseTrackerKey{}).(*responseTracker); ok {
		return tracker.err
	}

	return nil
}

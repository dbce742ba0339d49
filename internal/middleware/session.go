package middleware

import (
	"context"

	"github.com/koquifi/backend/pkg/router"
	"github.com/koquifi/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession persists the session info of the response, if any. An
// empty user_id drops the whole session instead.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.GetResponse(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, nil
		}

		cfg := xcontext.Configs(ctx).Session
		session, err := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx), cfg.Name)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if userID, ok := sessionInfo["user_id"].(string); ok && userID == "" {
			session.Options.MaxAge = -1
		}

		if err := session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return nil, nil
	}
}

package middleware

import (
	"context"
	"strings"

	"github.com/koquifi/backend/internal/model"
	"github.com/koquifi/backend/pkg/errorx"
	"github.com/koquifi/backend/pkg/router"
	"github.com/koquifi/backend/pkg/xcontext"
)

// AuthVerifier resolves the requesting user from an access token, a session
// cookie, or both. The request is rejected when no enabled source yields a
// user id.
type AuthVerifier struct {
	useAccessToken bool
	useSession     bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (v *AuthVerifier) WithAccessToken() *AuthVerifier {
	v.useAccessToken = true
	return v
}

func (v *AuthVerifier) WithSession() *AuthVerifier {
	v.useSession = true
	return v
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if v.useAccessToken {
			if token := getAccessToken(ctx); token != "" {
				var info model.AccessToken
				if err := xcontext.TokenEngine(ctx).Verify(token, &info); err == nil {
					return xcontext.WithRequestUserID(ctx, info.ID), nil
				}

				xcontext.Logger(ctx).Debugf("Cannot verify access token")
			}
		}

		if v.useSession {
			if userID := getSessionUserID(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func getSessionUserID(ctx context.Context) string {
	store := xcontext.SessionStore(ctx)
	if store == nil {
		return ""
	}

	session, err := store.Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok {
		return ""
	}

	return userID
}

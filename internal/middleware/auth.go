package middleware

import (
	"context"
	"strings"

	"github.com/sfdsa-platform/backend/pkg/errorx"
	"github.com/sfdsa-platform/backend/pkg/router"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

// WithRequestUser resolves the access token from the bearer header or the
// configured cookie and stores the user id on the context. Requests
// without a token pass through anonymously; Authenticate is the gate.
func WithRequestUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			token = cookieToken(ctx)
		}

		if token == "" {
			return ctx, nil
		}

		accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func bearerToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return ""
	}

	return token
}

func cookieToken(ctx context.Context) string {
	name := xcontext.Configs(ctx).Auth.AccessToken.Name
	cookie, err := xcontext.HTTPRequest(ctx).Cookie(name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

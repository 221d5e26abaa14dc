package graphql

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

type ctxKey string

const tokenErrorKey ctxKey = "tokenError"

func withTokenError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, tokenErrorKey, err)
}

func tokenErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(tokenErrorKey).(error)
	return err
}

// bearerToken attaches the caller's identity to the request context. A
// missing header passes through untouched; a bad token is remembered so the
// resolver can explain the rejection. Enforcement happens in the resolvers.
func bearerToken(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(common.AuthorizationHeaderName)
			if header == "" || parser == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			raw, ok := cutPrefixFold(header, common.BearerPrefix)
			raw = strings.TrimSpace(raw)

			if !ok || raw == "" {
				ctx = withTokenError(ctx, common.ErrInvalidToken)
			} else if claims, err := parser.ParseToken(raw); err != nil {
				ctx = withTokenError(ctx, err)
			} else {
				ctx = auth.WithClaims(ctx, claims)
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

package middleware

import (
	"context"

	"pubboard/app/models"
)

// CurrentUser returns the user resolved by RequireAuth, or nil on
// unprotected routes.
func CurrentUser(ctx context.Context) *models.User {
	if v := ctx.Value(userKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

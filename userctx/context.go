package userctx

import (
	"context"

	"github.com/alumnet/portal/models"
)

// Context key type
type contextKey string

const userKey contextKey = "user"

// SetUser adds the authenticated user to the request context.
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the request context.
// Returns nil for anonymous requests.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}

// GetUserEmail retrieves the authenticated user's email from the request
// context, falling back to "anonymous".
func GetUserEmail(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.Email
	}
	return "anonymous"
}

// HasRole reports whether the context user carries one of the given roles.
func HasRole(ctx context.Context, roles ...models.Role) bool {
	user := GetUser(ctx)
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

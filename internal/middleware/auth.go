package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ZainJ5/tipuburger-server/internal/auth"
)

type contextKey string

const authContextKey contextKey = "authContext"

type AuthContext struct {
	Username string
	Role     auth.AdminRole
	BranchID *int64
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	ac, ok := value.(*AuthContext)
	return ac, ok
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}

// AdminAuth guards the back-office routes. Tokens are issued at login and
// carry the branch the operator is scoped to, if any.
func AdminAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyAccessToken(token, jwtSecret)
			if err != nil {
				writeAuthError(w, "Authorization token required")
				return
			}

			authCtx := &AuthContext{
				Username: claims.Username,
				Role:     claims.Role,
				BranchID: claims.BranchID,
			}
			next.ServeHTTP(w, r.WithContext(WithAuthContext(r.Context(), authCtx)))
		})
	}
}

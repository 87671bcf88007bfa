package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhouzirui/wealth-desk/client/internal/service/auth"
	"github.com/zhouzirui/wealth-desk/client/pkg/utils"
)

type principalKey struct{}

// Verifier resolves bearer tokens.
type Verifier interface {
	Verify(ctx context.Context, token string) (auth.Principal, error)
}

// RequireBearer rejects requests without a valid "Authorization: Bearer" header
// and stores the resolved principal in the request context.
func RequireBearer(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			principal, err := v.Verify(r.Context(), strings.TrimSpace(token))
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the principal stored by RequireBearer.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

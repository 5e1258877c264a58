package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// Error codes written by the authentication middleware.
const (
	CodeNotAuthenticated = "not_authenticated"
	CodeInvalidToken     = "invalid_token"
)

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Given token not valid for any token type"
)

// AuthnMiddleware requires a valid access token and stores its claims in the
// request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, true)
}

// OptionalAuthnMiddleware lets anonymous requests through but still rejects
// a bearer token that is presented and fails verification.
func OptionalAuthnMiddleware(v jwtx.Verifier) Middleware {
	return authn(v, false)
}

func authn(v jwtx.Verifier, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" {
				if required {
					writeBearerError(w, CodeNotAuthenticated, msgNoCredentials)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(authz, "Bearer ")
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				writeBearerError(w, CodeInvalidToken, msgInvalidToken)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, CodeInvalidToken, msgInvalidToken)
				return
			}

			// Refresh tokens are only good for /token/refresh/.
			if err := claims.ValidateTokenType(jwtx.TokenTypeAccess); err != nil {
				log.Warn("non-access token presented", "token_type", claims.TokenType)
				writeBearerError(w, CodeInvalidToken, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

// writeBearerError sends an RFC 6750 challenge with a JSON body.
func writeBearerError(w http.ResponseWriter, code, desc string) {
	challenge := `Bearer realm="api"`
	if code == CodeInvalidToken {
		challenge += `, error="invalid_token"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	WriteError(w, http.StatusUnauthorized, code, desc)
}

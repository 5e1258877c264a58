package http

import (
	"net/http"

	"github.com/aussiebroadwan/blog/pkg/httpx"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
)

// JWKSHandler exposes the public keys access tokens are signed with. An
// HS256 deployment publishes an empty set.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify JWTs.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	jwtx.JWKS	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, keys.PublicJWKS())
	}
}

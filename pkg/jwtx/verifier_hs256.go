package jwtx

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates tokens signed with the shared secret held by an
// HS256Signer.
type HS256Verifier struct {
	kid    string
	secret []byte
	issuer string
	leeway time.Duration
}

func NewVerifierHS256(kid string, secret []byte, issuer string, leeway time.Duration) *HS256Verifier {
	return &HS256Verifier{
		kid:    kid,
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		leeway: leeway,
	}
}

func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	return parse(tokenStr, AlgorithmHS256, v.issuer, v.leeway, func(t *jwt.Token) (any, error) {
		kid, err := kidFromHeader(t)
		if err != nil {
			return nil, err
		}
		if subtle.ConstantTimeCompare([]byte(kid), []byte(v.kid)) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return v.secret, nil
	})
}

package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier validates Ed25519-signed tokens against a KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	leeway time.Duration
}

func NewVerifierEdDSA(keys *KeySet, issuer string, leeway time.Duration) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer, leeway: leeway}
}

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	return parse(tokenStr, AlgorithmEdDSA, v.issuer, v.leeway, func(t *jwt.Token) (any, error) {
		kid, err := kidFromHeader(t)
		if err != nil {
			return nil, err
		}

		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}

		key, ok := pub.(ed25519.PublicKey)
		if !ok {
			return nil, errors.New("jwtx: key is not Ed25519")
		}
		return key, nil
	})
}

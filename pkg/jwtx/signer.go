package jwtx

// Signer turns claims into a compact JWS.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	Validate() error
}

// PublicKeySigner is implemented by asymmetric signers whose verification
// key may be published in a JWKS.
type PublicKeySigner interface {
	Signer
	PublicJWK() JWK
}

// NewSignerEdDSA creates an EdDSA signer from a PKCS8 PEM private key.
func NewSignerEdDSA(kid string, pemKey []byte) (PublicKeySigner, error) {
	return newEdDSASigner(kid, pemKey)
}

// NewSignerHS256 creates an HMAC-SHA256 signer from a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	return newHS256Signer(kid, secret)
}

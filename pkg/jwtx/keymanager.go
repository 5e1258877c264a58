package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aussiebroadwan/blog/pkg/cryptox"
)

// Supported signing algorithms.
const (
	AlgorithmEdDSA = "EdDSA"
	AlgorithmHS256 = "HS256"
)

const maxKeys = 10

// KeyManager owns the signing keys of a running instance together with the
// matching verifier. EdDSA keys are generated in memory at startup, so every
// token becomes invalid on restart. HS256 uses one configured secret and
// publishes nothing in the JWKS.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string
	issuer    string

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmEdDSA or AlgorithmHS256.
	Algorithm string

	// Issuer is written to and required in the iss claim.
	Issuer string

	// NumKeys is the number of EdDSA keys to generate (default 1, max 10).
	// Ignored for HS256.
	NumKeys int

	// Secret is the HS256 shared secret, at least 32 bytes.
	Secret []byte

	// Leeway for exp/nbf checks. Zero means DefaultLeeway.
	Leeway time.Duration
}

// NewKeyManager builds a KeyManager for opts.Algorithm.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	leeway := opts.Leeway
	if leeway == 0 {
		leeway = DefaultLeeway
	}

	km := &KeyManager{
		KeySet:    NewKeySet(),
		algorithm: opts.Algorithm,
		issuer:    opts.Issuer,
	}

	switch opts.Algorithm {
	case AlgorithmEdDSA:
		n := min(max(opts.NumKeys, 1), maxKeys)
		for i := range n {
			kid, err := generateKeyID()
			if err != nil {
				return nil, err
			}
			pemKey, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return nil, fmt.Errorf("jwtx: generate EdDSA key %d: %w", i+1, err)
			}
			signer, err := NewSignerEdDSA(kid, pemKey)
			if err != nil {
				return nil, err
			}
			if err := km.KeySet.AddSigner(signer); err != nil {
				return nil, fmt.Errorf("jwtx: add signer %d to keyset: %w", i+1, err)
			}
			km.signers = append(km.signers, signer)
		}
		km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer, leeway)

	case AlgorithmHS256:
		kid := "hs256-" + cryptox.Fingerprint(opts.Secret)[:16]
		signer, err := NewSignerHS256(kid, opts.Secret)
		if err != nil {
			return nil, err
		}
		km.signers = append(km.signers, signer)
		km.Verifier = NewVerifierHS256(kid, opts.Secret, opts.Issuer, leeway)

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, HS256)", opts.Algorithm)
	}

	return km, nil
}

func (km *KeyManager) Algorithm() string { return km.algorithm }
func (km *KeyManager) Issuer() string    { return km.issuer }

// IsReady reports whether at least one signing key is loaded.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0
}

// GetSigner returns one of the active signers, chosen at random when more
// than one exists.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Sign signs claims with one of the active keys.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	s := km.GetSigner()
	if s == nil {
		return "", fmt.Errorf("jwtx: no signing key loaded")
	}
	return s.Sign(claims)
}

// generateKeyID returns "blog-" followed by a random 128-bit token.
func generateKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate key ID: %w", err)
	}
	return "blog-" + token, nil
}

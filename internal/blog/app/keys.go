package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/blog/pkg/jwtx"
)

// InitKeys creates the KeyManager for the configured algorithm.
//
// EdDSA keys are generated on startup and kept in memory only, so every
// outstanding token becomes invalid when the service restarts. Their public
// halves are published at /.well-known/jwks.json. HS256 signs with
// BLOG_SIGNING_SECRET, which lets tokens survive restarts and lets several
// instances share them.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		NumKeys:   cfg.NumKeys,
		Secret:    []byte(cfg.SigningSecret),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("signing keys ready",
		"algorithm", km.Algorithm(),
		"num_keys", km.NumSigners(),
		"published", km.KeySet.Len(),
	)
	return km, nil
}

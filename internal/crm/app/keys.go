package app

import (
	"fmt"
	"log/slog"

	"github.com/tallyhq/crm/pkg/jwtx"
)

// InitKeys creates a KeyManager with the configured algorithm. Keys are
// generated on startup and held only in memory, so a restart invalidates
// outstanding access tokens. Refresh tokens live in the database and
// survive restarts.
//
// Supported algorithms: ES256, EdDSA
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		Audience:  nil,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("generated signing keys",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)

	return keyManager, nil
}

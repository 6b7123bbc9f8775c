package secrets

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"go.uber.org/zap"
)

// VaultSourceConfig contains configuration for the Vault secret source
type VaultSourceConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Token for token authentication
	Token string

	// KV v2 secrets engine mount path (default: "secret")
	MountPath string
}

// vaultSource implements SecretSource for HashiCorp Vault (KV v2)
type vaultSource struct {
	client *vault.Client
	mount  string
	logger *zap.Logger
}

// NewVaultSource creates a secret source backed by HashiCorp Vault
func NewVaultSource(cfg VaultSourceConfig, logger *zap.Logger) (ports.SecretSource, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required for Vault auth")
	}
	client.SetToken(cfg.Token)

	mount := cfg.MountPath
	if mount == "" {
		mount = "secret"
	}

	logger.Info("Vault source initialized",
		zap.String("address", cfg.Address),
		zap.String("mount_path", mount),
	)

	return &vaultSource{
		client: client,
		mount:  mount,
		logger: logger,
	}, nil
}

// GetSecret reads the "value" field of a KV v2 secret
func (s *vaultSource) GetSecret(ctx context.Context, name string) (string, error) {
	s.logger.Debug("retrieving secret from Vault", zap.String("name", name))

	secret, err := s.client.KVv2(s.mount).Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve secret %s: %w", name, err)
	}

	value, ok := secret.Data["value"].(string)
	if !ok {
		return "", fmt.Errorf("secret %s has no string field %q", name, "value")
	}
	return value, nil
}

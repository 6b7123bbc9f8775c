package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
)

// envSource implements SecretSource from environment variables.
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in
// production.
type envSource struct{}

// NewEnvSource creates a secret source backed by environment variables
func NewEnvSource() ports.SecretSource {
	return &envSource{}
}

// GetSecret maps a secret name like "commercehub/api-key" to the variable
// COMMERCEHUB_API_KEY and returns its value.
func (s *envSource) GetSecret(ctx context.Context, name string) (string, error) {
	key := strings.ToUpper(name)
	key = strings.NewReplacer("/", "_", "-", "_").Replace(key)

	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("secret not found: %s (env %s)", name, key)
	}
	return value, nil
}

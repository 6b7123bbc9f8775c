package ports

import "context"

// SecretSource resolves named secrets (the gateway API key and HMAC signing
// key) from a backing store at startup.
type SecretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

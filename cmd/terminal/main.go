package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/cardreader"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/commercehub"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/secrets"
	"github.com/kevin07696/tap-to-pay-service/internal/config"
	"github.com/kevin07696/tap-to-pay-service/internal/domain/models"
	"github.com/kevin07696/tap-to-pay-service/internal/services/transaction"
	"github.com/kevin07696/tap-to-pay-service/pkg/security"
	"go.uber.org/zap"
)

// Smoke tool for gateway connectivity: requests session credentials and runs
// a transaction inquiry. Card reads are unavailable here since the NFC
// capability only exists on provisioned devices.
func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := newZapLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := security.NewZapLogger(zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	creds, err := resolveCredentials(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("resolving gateway credentials", zap.Error(err))
	}

	env, err := commercehub.ParseEnvironment(cfg.Gateway.Environment)
	if err != nil {
		zapLogger.Fatal("parsing environment", zap.Error(err))
	}

	client := commercehub.NewClientWithDefaults(creds, env, logger)
	reader := cardreader.NewAdapter(&noReader{}, logger)
	orchestrator := transaction.NewOrchestrator(cfg.Gateway, client, reader, logger)

	if err := orchestrator.RequestSessionToken(ctx); err != nil {
		zapLogger.Fatal("requesting session token", zap.Error(err))
	}
	zapLogger.Info("session token acquired")

	if ref := os.Getenv("CH_INQUIRY_MERCHANT_TXN_ID"); ref != "" {
		results, err := orchestrator.TransactionInquiry(ctx, models.ReferenceTransactionDetails{
			ReferenceMerchantTransactionID: ref,
		})
		if err != nil {
			zapLogger.Fatal("transaction inquiry", zap.Error(err))
		}
		zapLogger.Info("transaction inquiry complete", zap.Int("matches", len(results)))
	}
}

func newZapLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

// resolveCredentials pulls the API key and signing secret from the
// configured backend, falling back to values already present in the gateway
// config.
func resolveCredentials(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (commercehub.Credentials, error) {
	if cfg.Gateway.APIKey != "" && cfg.Gateway.SecretKey != "" {
		return commercehub.Credentials{APIKey: cfg.Gateway.APIKey, SecretKey: cfg.Gateway.SecretKey}, nil
	}

	var source ports.SecretSource
	var err error
	switch cfg.Secrets.Backend {
	case "aws":
		source, err = secrets.NewAWSSource(ctx, os.Getenv("AWS_REGION"), zapLogger)
	case "vault":
		source, err = secrets.NewVaultSource(secrets.VaultSourceConfig{
			Address:   os.Getenv("VAULT_ADDR"),
			Token:     os.Getenv("VAULT_TOKEN"),
			MountPath: cfg.Secrets.VaultMount,
		}, zapLogger)
	default:
		source = secrets.NewEnvSource()
	}
	if err != nil {
		return commercehub.Credentials{}, err
	}

	apiKey, err := source.GetSecret(ctx, cfg.Secrets.APIKeyName)
	if err != nil {
		return commercehub.Credentials{}, err
	}
	secretKey, err := source.GetSecret(ctx, cfg.Secrets.SecretKeyName)
	if err != nil {
		return commercehub.Credentials{}, err
	}
	return commercehub.Credentials{APIKey: apiKey, SecretKey: secretKey}, nil
}

// noReader is the capability stand-in for hosts without NFC hardware.
type noReader struct{}

var errNoReader = errors.New("tap to pay capability not available on this host")

func (*noReader) IsSupported() bool { return false }

func (*noReader) ReaderIdentifier(context.Context) (string, error) { return "", errNoReader }

func (*noReader) LinkAccount(context.Context, string) error { return errNoReader }

func (*noReader) IsAccountLinked(context.Context, string) (bool, error) { return false, errNoReader }

func (*noReader) PrepareSession(context.Context, string) (ports.ReaderSession, error) {
	return nil, errNoReader
}

package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"go.uber.org/zap"
)

// awsSource implements SecretSource for AWS Secrets Manager. Credentials are
// resolved once at startup, so no caching layer is needed.
type awsSource struct {
	client *secretsmanager.Client
	logger *zap.Logger
}

// NewAWSSource creates a secret source backed by AWS Secrets Manager using
// the default credentials chain (IAM role in production).
func NewAWSSource(ctx context.Context, region string, logger *zap.Logger) (ports.SecretSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("AWS Secrets Manager source initialized", zap.String("region", region))

	return &awsSource{
		client: secretsmanager.NewFromConfig(cfg),
		logger: logger,
	}, nil
}

// GetSecret retrieves a secret by name or full ARN
func (s *awsSource) GetSecret(ctx context.Context, name string) (string, error) {
	s.logger.Debug("retrieving secret from AWS Secrets Manager", zap.String("name", name))

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to retrieve secret %s: %w", name, err)
	}

	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}
	return *out.SecretString, nil
}

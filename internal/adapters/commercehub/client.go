package commercehub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/kevin07696/tap-to-pay-service/internal/domain"
	"github.com/kevin07696/tap-to-pay-service/pkg/observability"
)

// Credentials holds the gateway API key and the shared HMAC signing secret.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// Client signs and executes gateway requests. It performs no retries:
// financial operations must not be silently resubmitted, so failures are
// returned to the caller and retry policy stays with the host application.
type Client struct {
	creds      Credentials
	env        Environment
	httpClient ports.HTTPClient
	logger     ports.Logger

	// Injected for deterministic signature tests.
	now       func() time.Time
	requestID func() string
}

// NewClient creates a gateway client with dependency injection
func NewClient(creds Credentials, env Environment, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	return &Client{
		creds:      creds,
		env:        env,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
		requestID:  NewClientRequestID,
	}
}

// NewClientWithDefaults creates a gateway client with a default HTTP client
func NewClientWithDefaults(creds Credentials, env Environment, logger ports.Logger) *Client {
	return NewClient(creds, env, &http.Client{Timeout: 30 * time.Second}, logger)
}

// NewClientRequestID returns a fresh random 8-digit correlation id. A new id
// is generated for every attempt and folded into the HMAC signature, which
// binds each signature to exactly one request.
func NewClientRequestID() string {
	return strconv.Itoa(10000000 + rand.IntN(90000000))
}

// Post signs and executes one POST against the gateway and decodes the
// declared response model. Every failure comes back as a *domain.TapError.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	start := c.now()

	payload, err := json.Marshal(body)
	if err != nil {
		// Indicates an encoding bug in a payload builder, not a transient
		// condition.
		return nil, domain.NewMissingBodyError(err)
	}

	if !c.env.IsValid() {
		return nil, domain.NewInvalidURLError(string(c.env))
	}
	endpoint := url.URL{Scheme: "https", Host: c.env.Host(), Path: path}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewInvalidURLError(endpoint.String())
	}

	timestamp := c.now().UnixMilli()
	clientRequestID := c.requestID()
	signature := CalculateSignature(c.creds.SecretKey, c.creds.APIKey, clientRequestID, timestamp, payload)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Auth-Token-Type", "HMAC")
	req.Header.Set("Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("Api-Key", c.creds.APIKey)
	req.Header.Set("Client-Request-Id", clientRequestID)
	req.Header.Set("Authorization", signature)

	if c.logger != nil {
		c.logger.Info("sending gateway request",
			ports.String("path", path),
			ports.String("client_request_id", clientRequestID),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveGatewayRequest(path, observability.OutcomeTransport, start)
		return nil, domain.NewUnknownError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.ObserveGatewayRequest(path, observability.OutcomeTransport, start)
		return nil, domain.NewUnknownError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.ObserveGatewayRequest(path, observability.OutcomeRejected, start)
		if c.logger != nil {
			c.logger.Warn("gateway rejected request",
				ports.String("path", path),
				ports.Int("status", resp.StatusCode),
			)
		}
		return nil, domain.NewStatusError(resp.StatusCode, string(respBody))
	}

	var decoded T
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		observability.ObserveGatewayRequest(path, observability.OutcomeDecode, start)
		return nil, domain.NewDecodeResponseError(err)
	}

	observability.ObserveGatewayRequest(path, observability.OutcomeSuccess, start)
	return &decoded, nil
}

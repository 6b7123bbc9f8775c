package transaction

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/cardreader"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/commercehub"
	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/kevin07696/tap-to-pay-service/internal/config"
	"github.com/kevin07696/tap-to-pay-service/internal/domain"
	"github.com/kevin07696/tap-to-pay-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// SessionToken is the gateway-issued bearer token and its expiry, decoded
// from the token's embedded claim.
type SessionToken struct {
	AccessToken        string
	ExpiryEpochSeconds int64
}

// Orchestrator is the stateful facade over the card reader and the gateway:
// it owns the session token, decides per operation whether a physical card
// read is required, assembles the typed payload and post-processes the
// result. The token is the only state shared across calls; it is replaced
// only by RequestSessionToken.
//
// The orchestrator is designed for one in-flight payment operation at a
// time. Token read/replace is mutex-guarded so a concurrent refresh cannot
// hand out a torn value, but the SDK does not serialize whole operations.
type Orchestrator struct {
	cfg    config.GatewayConfig
	client *commercehub.Client
	reader *cardreader.Adapter
	logger ports.Logger

	mu    sync.Mutex
	token *SessionToken

	ready chan bool

	// Injected for the auto-refresh boundary tests.
	now func() time.Time
}

// NewOrchestrator creates a transaction orchestrator with dependency injection
func NewOrchestrator(cfg config.GatewayConfig, client *commercehub.Client, reader *cardreader.Adapter, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		client: client,
		reader: reader,
		logger: logger,
		ready:  make(chan bool, 8),
		now:    time.Now,
	}
}

// SessionReady emits session-ready transitions for UI binding: true when a
// reader session is prepared, false when the reader reports notReady.
func (o *Orchestrator) SessionReady() <-chan bool {
	return o.ready
}

// IsReaderSupported reports whether the device can accept contactless
// payments.
func (o *Orchestrator) IsReaderSupported() bool {
	return o.reader.IsSupported()
}

// RequestSessionToken obtains fresh Tap to Pay session credentials from the
// gateway and stores the bearer token with its decoded expiry. The prior
// token is cleared first so a failed refresh leaves no stale token behind.
func (o *Orchestrator) RequestSessionToken(ctx context.Context) error {
	o.setToken(nil)

	req := buildTokenRequest(o.cfg)
	resp, err := commercehub.Post[models.TokenResponse](ctx, o.client, commercehub.PathCredentials, req)
	if err != nil {
		return wrapTokenRequestError(err)
	}

	if resp.AccessToken == nil || *resp.AccessToken == "" {
		return domain.NewTapError(domain.TitleTokenRequest, "unable to request token").
			WithReason("gateway response carried no access token")
	}

	expiry, err := decodeTokenExpiry(*resp.AccessToken)
	if err != nil {
		return domain.WrapTapError(domain.TitleTokenRequest, "unable to request token", err)
	}

	o.setToken(&SessionToken{
		AccessToken:        *resp.AccessToken,
		ExpiryEpochSeconds: expiry,
	})

	o.logger.Info("session token acquired",
		ports.String("expires_at", time.Unix(expiry, 0).UTC().Format(time.RFC3339)),
	)
	return nil
}

// LinkAccount links the device to the merchant account. Requires a session
// token.
func (o *Orchestrator) LinkAccount(ctx context.Context) error {
	token := o.currentToken()
	if token == nil {
		return domain.NewMissingTokenError()
	}
	return o.reader.LinkAccount(ctx, token.AccessToken)
}

// InitializeSession prepares the reader session, transparently refreshing
// the session token first when less than the refresh threshold remains.
func (o *Orchestrator) InitializeSession(ctx context.Context) error {
	token := o.currentToken()
	if token == nil {
		return domain.NewMissingTokenError()
	}

	if token.ExpiryEpochSeconds-o.now().Unix() < refreshThresholdSeconds {
		o.logger.Info("session token near expiry, refreshing")
		if err := o.RequestSessionToken(ctx); err != nil {
			return err
		}
		token = o.currentToken()
		if token == nil {
			return domain.NewMissingTokenError()
		}
	}

	err := o.reader.PrepareSession(ctx, token.AccessToken, func(event ports.ReaderEvent) {
		if event.Name == ports.ReaderEventNotReady {
			o.publishReady(false)
		}
	})
	if err != nil {
		return err
	}

	o.publishReady(true)
	return nil
}

// Charges submits a sale, auth, capture or token charge. A physical card
// read happens exactly when no payment token source is supplied and the type
// is sale or auth; capture and paymentToken settle a prior auth or bill a
// stored token and never read a card.
func (o *Orchestrator) Charges(
	ctx context.Context,
	amount decimal.Decimal,
	transactionType models.TransactionType,
	transactionDetails models.TransactionDetails,
	referenceDetails *models.ReferenceTransactionDetails,
	paymentTokenSource *models.PaymentTokenSource,
) (*models.CommerceHubResponse, error) {
	if err := validateCaptureFlag(transactionType, transactionDetails.CaptureFlag); err != nil {
		return nil, err
	}

	var readContext *models.CardVerificationContext
	needsRead := paymentTokenSource == nil &&
		(transactionType == models.TransactionTypeSale || transactionType == models.TransactionTypeAuth)
	if needsRead {
		rc, err := o.performFinancialRead(ctx, amount, readTypeCharges)
		if err != nil {
			return nil, err
		}
		readContext = rc
	}

	req := models.ChargesRequest{
		Amount:                      models.Amount{Total: amount, Currency: o.cfg.CurrencyCode},
		TransactionDetails:          normalizeTransactionDetails(transactionDetails),
		TransactionInteraction:      newTransactionInteraction(),
		MerchantDetails:             newMerchantDetails(o.cfg),
		ReferenceTransactionDetails: referenceDetails,
	}
	switch {
	case paymentTokenSource != nil:
		req.Source = newTokenSource(*paymentTokenSource)
	case readContext != nil:
		req.Source = newCardSource(*readContext)
	}

	resp, err := commercehub.Post[models.CommerceHubResponse](ctx, o.client, commercehub.PathCharges, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleCharges, "The charge could not be completed", err)
	}

	if readContext != nil {
		attachRawCardData(resp, *readContext)
	}
	return resp, nil
}

// Cancels voids a prior transaction by reference. No card read.
func (o *Orchestrator) Cancels(
	ctx context.Context,
	amount decimal.Decimal,
	referenceDetails models.ReferenceTransactionDetails,
) (*models.CommerceHubResponse, error) {
	req := models.CancelsRequest{
		Amount:                      models.Amount{Total: amount, Currency: o.cfg.CurrencyCode},
		ReferenceTransactionDetails: referenceDetails,
		MerchantDetails:             newMerchantDetails(o.cfg),
	}

	resp, err := commercehub.Post[models.CommerceHubResponse](ctx, o.client, commercehub.PathCancels, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleCancels, "The cancel could not be completed", err)
	}
	return resp, nil
}

// Refunds submits a matched, unmatched or open refund. Matched refunds
// reference the original transaction's stored card data; unmatched and open
// refunds require a fresh card read.
func (o *Orchestrator) Refunds(
	ctx context.Context,
	amount decimal.Decimal,
	refundType models.RefundType,
	transactionDetails *models.TransactionDetails,
	referenceDetails *models.ReferenceTransactionDetails,
) (*models.CommerceHubResponse, error) {
	var readContext *models.CardVerificationContext
	if refundType == models.RefundTypeUnmatched || refundType == models.RefundTypeOpen {
		rc, err := o.performFinancialRead(ctx, amount, readTypeRefunds)
		if err != nil {
			return nil, err
		}
		readContext = rc
	}

	req := models.RefundsRequest{
		Amount:                      &models.Amount{Total: amount, Currency: o.cfg.CurrencyCode},
		ReferenceTransactionDetails: referenceDetails,
		MerchantDetails:             newMerchantDetails(o.cfg),
	}
	if transactionDetails != nil {
		normalized := normalizeTransactionDetails(*transactionDetails)
		req.TransactionDetails = &normalized
	}
	if readContext != nil {
		req.Source = newCardSource(*readContext)
	}

	resp, err := commercehub.Post[models.CommerceHubResponse](ctx, o.client, commercehub.PathRefunds, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleRefunds, "The refund could not be completed", err)
	}

	if readContext != nil {
		attachRawCardData(resp, *readContext)
	}
	return resp, nil
}

// AccountVerification verifies an account without moving money. Without a
// payment token source it performs a non-financial look-up read first.
func (o *Orchestrator) AccountVerification(
	ctx context.Context,
	transactionDetails models.TransactionDetails,
	paymentTokenSource *models.PaymentTokenSource,
	billingAddress *models.BillingAddress,
) (*models.AccountVerificationResponse, error) {
	var readContext *models.CardVerificationContext
	var source *models.Source
	if paymentTokenSource != nil {
		source = newTokenSource(*paymentTokenSource)
	} else {
		rc, err := o.performVerifyRead(ctx)
		if err != nil {
			return nil, err
		}
		readContext = rc
		source = newCardSource(*rc)
	}

	details := normalizeTransactionDetails(transactionDetails)
	req := models.AccountVerificationRequest{
		Source:             *source,
		TransactionDetails: &details,
		BillingAddress:     billingAddress,
		MerchantDetails:    newMerchantDetails(o.cfg),
	}

	resp, err := commercehub.Post[models.AccountVerificationResponse](ctx, o.client, commercehub.PathAccountVerification, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleAccountVerification, "The account verification could not be completed", err)
	}

	if readContext != nil {
		resp.Source = attachRawToSource(resp.Source, *readContext)
	}
	return resp, nil
}

// TokenizeCard exchanges a non-financial card read for a stored payment
// token.
func (o *Orchestrator) TokenizeCard(
	ctx context.Context,
	transactionDetails models.TransactionDetails,
) (*models.TokenizeCardResponse, error) {
	readContext, err := o.performVerifyRead(ctx)
	if err != nil {
		return nil, err
	}

	req := models.TokenizeRequest{
		Source:             *newCardSource(*readContext),
		TransactionDetails: normalizeTransactionDetails(transactionDetails),
		MerchantDetails:    newMerchantDetails(o.cfg),
	}

	resp, err := commercehub.Post[models.TokenizeCardResponse](ctx, o.client, commercehub.PathTokens, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleTokenizeCard, "The card could not be tokenized", err)
	}

	resp.Source = attachRawToSource(resp.Source, *readContext)
	return resp, nil
}

// TransactionInquiry looks up prior transactions by reference. The gateway
// may return multiple matches.
func (o *Orchestrator) TransactionInquiry(
	ctx context.Context,
	referenceDetails models.ReferenceTransactionDetails,
) (models.InquireResponse, error) {
	req := models.InquiryRequest{
		ReferenceTransactionDetails: referenceDetails,
		MerchantDetails:             newMerchantDetails(o.cfg),
	}

	resp, err := commercehub.Post[models.InquireResponse](ctx, o.client, commercehub.PathTransactionInquiry, req)
	if err != nil {
		return nil, domain.WrapTapError(domain.TitleInquiry, "The transaction inquiry could not be completed", err)
	}
	return *resp, nil
}

// performFinancialRead runs the reader-id -> financial-tap -> validate
// sequence and packages the result for the payload builders. The read is
// strictly sequential with the submit that follows it.
func (o *Orchestrator) performFinancialRead(ctx context.Context, amount decimal.Decimal, transactionType string) (*models.CardVerificationContext, error) {
	readerID, err := o.reader.ReaderIdentifier(ctx)
	if err != nil {
		return nil, err
	}

	result, err := o.reader.ReadCard(ctx, amount, o.cfg.CurrencyCode, transactionType)
	if err != nil {
		return nil, err
	}

	return buildReadContext(readerID, result)
}

// performVerifyRead runs the reader-id -> look-up-tap -> validate sequence
// for non-financial operations.
func (o *Orchestrator) performVerifyRead(ctx context.Context) (*models.CardVerificationContext, error) {
	readerID, err := o.reader.ReaderIdentifier(ctx)
	if err != nil {
		return nil, err
	}

	result, err := o.reader.VerifyCard(ctx, o.cfg.CurrencyCode, verifyReasonLookUp)
	if err != nil {
		return nil, err
	}

	return buildReadContext(readerID, result)
}

func buildReadContext(readerID string, result *ports.ReadResult) (*models.CardVerificationContext, error) {
	if result == nil || result.ID == "" || result.GeneralCardData == nil || result.PaymentCardData == nil {
		return nil, domain.NewCardDataCorruptError()
	}
	return &models.CardVerificationContext{
		CardReaderID:    readerID,
		TransactionID:   result.ID,
		GeneralCardData: *result.GeneralCardData,
		PaymentCardData: *result.PaymentCardData,
	}, nil
}

// validateCaptureFlag enforces the capture-flag/transaction-type contract
// before any network call: auth must not capture, everything else must.
func validateCaptureFlag(transactionType models.TransactionType, captureFlag *bool) error {
	if captureFlag == nil {
		return domain.NewTapError(domain.TitleInvalidCaptureFlag, "transactionDetails.captureFlag is required")
	}
	if transactionType == models.TransactionTypeAuth {
		if *captureFlag {
			return domain.NewInvalidCaptureFlagError(string(transactionType), *captureFlag)
		}
		return nil
	}
	if !*captureFlag {
		return domain.NewInvalidCaptureFlagError(string(transactionType), *captureFlag)
	}
	return nil
}

// attachRawCardData overwrites the gateway's echo of the general card data
// with the locally held raw bytes (base64 blob decoded, re-encoded as hex),
// which is the form the host needs for receipt display.
func attachRawCardData(resp *models.CommerceHubResponse, rc models.CardVerificationContext) {
	resp.Source = attachRawToSource(resp.Source, rc)
}

func attachRawToSource(source *models.ResponseSource, rc models.CardVerificationContext) *models.ResponseSource {
	raw, err := base64.StdEncoding.DecodeString(rc.GeneralCardData)
	if err != nil {
		// Leave the gateway echo in place rather than attach garbage.
		return source
	}
	encoded := hex.EncodeToString(raw)

	if source == nil {
		source = &models.ResponseSource{}
	}
	source.GeneralCardData = &encoded
	return source
}

// decodeTokenExpiry reads the exp claim from the bearer token's middle
// segment without verifying the signature; the gateway is the issuer and
// the SDK only needs the expiry for refresh scheduling.
func decodeTokenExpiry(token string) (int64, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return 0, err
	}
	if exp == nil {
		return 0, fmt.Errorf("token carries no exp claim")
	}
	return exp.Unix(), nil
}

func wrapTokenRequestError(err error) *domain.TapError {
	var te *domain.TapError
	if errors.As(err, &te) {
		return domain.WrapTapError(domain.TitleTokenRequest, "The session token request failed", te)
	}
	return domain.NewTapError(domain.TitleTokenRequest, "unable to request token")
}

func (o *Orchestrator) currentToken() *SessionToken {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token
}

func (o *Orchestrator) setToken(token *SessionToken) {
	o.mu.Lock()
	o.token = token
	o.mu.Unlock()
}

// publishReady emits a session-ready transition without blocking; a slow or
// absent subscriber drops the oldest signal rather than stalling the
// payment flow.
func (o *Orchestrator) publishReady(ready bool) {
	select {
	case o.ready <- ready:
	default:
		select {
		case <-o.ready:
		default:
		}
		select {
		case o.ready <- ready:
		default:
		}
	}
}

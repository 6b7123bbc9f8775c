package transaction

import (
	"github.com/google/uuid"
	"github.com/kevin07696/tap-to-pay-service/internal/config"
	"github.com/kevin07696/tap-to-pay-service/internal/domain/models"
)

// Gateway protocol constants.
const (
	channelISV = "ISV"

	// Requested session-token lifetime in seconds (48h).
	tokenTTLSeconds = 172800

	// Remaining lifetime below which the token is refreshed before use.
	refreshThresholdSeconds = 1800

	interactionOrigin   = "POS"
	interactionPosEntry = "CONTACTLESS"

	verifyReasonLookUp = "lookUp"
)

// Transaction-type strings passed to the reader for financial taps.
const (
	readTypeCharges = "CHARGES"
	readTypeRefunds = "REFUNDS"
)

func buildTokenRequest(cfg config.GatewayConfig) models.TokenRequest {
	req := models.TokenRequest{
		TerminalProfileID:     cfg.TerminalProfileID,
		Channel:               channelISV,
		AccessTokenTimeToLive: tokenTTLSeconds,
		DynamicDescriptors: &models.DynamicDescriptors{
			MCC:          cfg.MerchantCategoryCode,
			MerchantName: cfg.MerchantName,
		},
		MerchantDetails: newMerchantDetails(cfg),
	}
	if cfg.AppleMerchantID != "" {
		req.AppleMerchantID = &cfg.AppleMerchantID
	}
	return req
}

func newMerchantDetails(cfg config.GatewayConfig) models.MerchantDetails {
	return models.MerchantDetails{
		MerchantID: cfg.MerchantID,
		TerminalID: cfg.TerminalID,
	}
}

// newCardSource builds the payment source from one tap's output.
func newCardSource(rc models.CardVerificationContext) *models.Source {
	return &models.Source{
		SourceType:              models.SourceTypeAppleTapToPay,
		GeneralCardData:         &rc.GeneralCardData,
		PaymentCardData:         &rc.PaymentCardData,
		CardReaderID:            &rc.CardReaderID,
		CardReaderTransactionID: &rc.TransactionID,
	}
}

// newTokenSource builds the payment source from a stored payment token.
func newTokenSource(ts models.PaymentTokenSource) *models.Source {
	src := &models.Source{
		SourceType: models.SourceTypePaymentToken,
		TokenData:  &ts.TokenData,
	}
	if ts.TokenSource != "" {
		src.TokenSource = &ts.TokenSource
	}
	return src
}

func newTransactionInteraction() *models.TransactionInteraction {
	return &models.TransactionInteraction{
		Origin:       interactionOrigin,
		PosEntryMode: interactionPosEntry,
	}
}

// normalizeTransactionDetails fills merchant correlation ids the host did
// not supply. The gateway requires both for idempotent replay on the host's
// side.
func normalizeTransactionDetails(d models.TransactionDetails) models.TransactionDetails {
	if d.MerchantTransactionID == "" {
		d.MerchantTransactionID = uuid.New().String()
	}
	if d.MerchantOrderID == "" {
		d.MerchantOrderID = uuid.New().String()
	}
	return d
}

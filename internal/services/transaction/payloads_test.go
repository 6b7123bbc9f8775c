package transaction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kevin07696/tap-to-pay-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTokenRequest(t *testing.T) {
	cfg := testGatewayConfig()
	req := buildTokenRequest(cfg)

	assert.Equal(t, cfg.TerminalProfileID, req.TerminalProfileID)
	assert.Equal(t, "ISV", req.Channel)
	assert.Equal(t, 172800, req.AccessTokenTimeToLive)
	require.NotNil(t, req.DynamicDescriptors)
	assert.Equal(t, cfg.MerchantCategoryCode, req.DynamicDescriptors.MCC)
	assert.Equal(t, cfg.MerchantName, req.DynamicDescriptors.MerchantName)
	assert.Equal(t, cfg.MerchantID, req.MerchantDetails.MerchantID)
	assert.Equal(t, cfg.TerminalID, req.MerchantDetails.TerminalID)
	assert.Nil(t, req.AppleMerchantID)

	cfg.AppleMerchantID = "merchant.com.example"
	req = buildTokenRequest(cfg)
	require.NotNil(t, req.AppleMerchantID)
	assert.Equal(t, "merchant.com.example", *req.AppleMerchantID)
}

func TestNewCardSource(t *testing.T) {
	src := newCardSource(models.CardVerificationContext{
		CardReaderID:    "reader-1",
		TransactionID:   "T1",
		GeneralCardData: "Zm9v",
		PaymentCardData: "YmFy",
	})

	assert.Equal(t, models.SourceTypeAppleTapToPay, src.SourceType)
	assert.Equal(t, "Zm9v", *src.GeneralCardData)
	assert.Equal(t, "YmFy", *src.PaymentCardData)
	assert.Equal(t, "reader-1", *src.CardReaderID)
	assert.Equal(t, "T1", *src.CardReaderTransactionID)
	assert.Nil(t, src.TokenData)
}

func TestNewTokenSource(t *testing.T) {
	src := newTokenSource(models.PaymentTokenSource{TokenData: "stored-token"})

	assert.Equal(t, models.SourceTypePaymentToken, src.SourceType)
	assert.Equal(t, "stored-token", *src.TokenData)
	assert.Nil(t, src.TokenSource)
	assert.Nil(t, src.GeneralCardData)

	src = newTokenSource(models.PaymentTokenSource{TokenData: "stored-token", TokenSource: "TRANSARMOR"})
	require.NotNil(t, src.TokenSource)
	assert.Equal(t, "TRANSARMOR", *src.TokenSource)
}

func TestNormalizeTransactionDetails_FillsCorrelationIDs(t *testing.T) {
	capture := true
	normalized := normalizeTransactionDetails(models.TransactionDetails{CaptureFlag: &capture})

	_, err := uuid.Parse(normalized.MerchantTransactionID)
	assert.NoError(t, err)
	_, err = uuid.Parse(normalized.MerchantOrderID)
	assert.NoError(t, err)
	assert.Equal(t, &capture, normalized.CaptureFlag)
}

func TestNormalizeTransactionDetails_KeepsSuppliedIDs(t *testing.T) {
	normalized := normalizeTransactionDetails(models.TransactionDetails{
		MerchantTransactionID: "host-txn",
		MerchantOrderID:       "host-order",
	})

	assert.Equal(t, "host-txn", normalized.MerchantTransactionID)
	assert.Equal(t, "host-order", normalized.MerchantOrderID)
}

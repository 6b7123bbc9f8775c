package transaction

import (
	"context"

	"github.com/kevin07696/tap-to-pay-service/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Legacy single-purpose methods kept for callers of the original SDK
// surface. Each is a thin wrapper over the unified operations; only the
// external signature is preserved.

// ReadCard performs an immediate-capture sale.
//
// Deprecated: use Charges with models.TransactionTypeSale.
func (o *Orchestrator) ReadCard(ctx context.Context, amount decimal.Decimal) (*models.CommerceHubResponse, error) {
	capture := true
	return o.Charges(ctx, amount, models.TransactionTypeSale,
		models.TransactionDetails{CaptureFlag: &capture}, nil, nil)
}

// VoidTransaction voids a prior transaction by reference.
//
// Deprecated: use Cancels.
func (o *Orchestrator) VoidTransaction(ctx context.Context, amount decimal.Decimal, referenceDetails models.ReferenceTransactionDetails) (*models.CommerceHubResponse, error) {
	return o.Cancels(ctx, amount, referenceDetails)
}

// RefundTransaction refunds to the card stored with the original
// transaction.
//
// Deprecated: use Refunds with models.RefundTypeMatched.
func (o *Orchestrator) RefundTransaction(ctx context.Context, amount decimal.Decimal, referenceDetails models.ReferenceTransactionDetails) (*models.CommerceHubResponse, error) {
	return o.Refunds(ctx, amount, models.RefundTypeMatched, nil, &referenceDetails)
}

// RefundCard refunds to a freshly tapped card: unmatched when a reference is
// supplied, open otherwise.
//
// Deprecated: use Refunds with models.RefundTypeUnmatched or
// models.RefundTypeOpen.
func (o *Orchestrator) RefundCard(ctx context.Context, amount decimal.Decimal, referenceDetails *models.ReferenceTransactionDetails) (*models.CommerceHubResponse, error) {
	refundType := models.RefundTypeOpen
	if referenceDetails != nil {
		refundType = models.RefundTypeUnmatched
	}
	return o.Refunds(ctx, amount, refundType, nil, referenceDetails)
}

// InquiryTransaction looks up prior transactions by reference.
//
// Deprecated: use TransactionInquiry.
func (o *Orchestrator) InquiryTransaction(ctx context.Context, referenceDetails models.ReferenceTransactionDetails) (models.InquireResponse, error) {
	return o.TransactionInquiry(ctx, referenceDetails)
}

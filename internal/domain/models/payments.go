package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType selects the charge variant submitted to the gateway.
type TransactionType string

const (
	TransactionTypeSale         TransactionType = "sale"
	TransactionTypeAuth         TransactionType = "auth"
	TransactionTypeCapture      TransactionType = "capture"
	TransactionTypePaymentToken TransactionType = "paymentToken"
)

// RefundType selects the refund variant.
type RefundType string

const (
	// RefundTypeMatched refunds to the card stored with the original
	// transaction. No card read.
	RefundTypeMatched RefundType = "matched"
	// RefundTypeUnmatched refunds to a different card while referencing the
	// original transaction. Requires a card read.
	RefundTypeUnmatched RefundType = "unmatched"
	// RefundTypeOpen refunds with no reference to a prior transaction.
	// Requires a card read.
	RefundTypeOpen RefundType = "open"
)

// Source type discriminators on the wire.
const (
	SourceTypeAppleTapToPay = "AppleTapToPay"
	SourceTypePaymentToken  = "PaymentToken"
)

// Amount is a monetary amount. Total is an exact decimal; Currency is a
// 3-letter ISO code.
type Amount struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Source identifies where the payment funds come from. Exactly one source
// type is populated per request: either the encrypted card-read blobs or a
// stored payment token, never both.
type Source struct {
	SourceType              string  `json:"sourceType"`
	GeneralCardData         *string `json:"generalCardData,omitempty"`
	PaymentCardData         *string `json:"paymentCardData,omitempty"`
	CardReaderID            *string `json:"cardReaderId,omitempty"`
	CardReaderTransactionID *string `json:"cardReaderTransactionId,omitempty"`
	TokenData               *string `json:"tokenData,omitempty"`
	TokenSource             *string `json:"tokenSource,omitempty"`
}

// PaymentTokenSource is the host-supplied reference to a previously stored
// card, usable in place of a fresh card read.
type PaymentTokenSource struct {
	TokenData   string `json:"tokenData"`
	TokenSource string `json:"tokenSource,omitempty"`
}

// MerchantDetails identifies the merchant and terminal on every request.
type MerchantDetails struct {
	MerchantID string `json:"merchantId"`
	TerminalID string `json:"terminalId,omitempty"`
}

// TransactionDetails carries per-transaction options supplied by the host.
type TransactionDetails struct {
	CaptureFlag           *bool   `json:"captureFlag,omitempty"`
	MerchantTransactionID string  `json:"merchantTransactionId,omitempty"`
	MerchantOrderID       string  `json:"merchantOrderId,omitempty"`
	MerchantInvoiceNumber string  `json:"merchantInvoiceNumber,omitempty"`
	CreateToken           *bool   `json:"createToken,omitempty"`
	PrimaryTransactionID  *string `json:"primaryTransactionId,omitempty"`
}

// TransactionInteraction describes how the card was presented.
type TransactionInteraction struct {
	Origin         string `json:"origin,omitempty"`
	PosEntryMode   string `json:"posEntryMode,omitempty"`
	PosConditionCode string `json:"posConditionCode,omitempty"`
}

// ReferenceTransactionDetails points a cancel, refund, capture or inquiry at
// a prior transaction.
type ReferenceTransactionDetails struct {
	ReferenceTransactionID         string `json:"referenceTransactionId,omitempty"`
	ReferenceMerchantTransactionID string `json:"referenceMerchantTransactionId,omitempty"`
	ReferenceOrderID               string `json:"referenceOrderId,omitempty"`
	ReferenceMerchantOrderID       string `json:"referenceMerchantOrderId,omitempty"`
	ReferenceTransactionType       string `json:"referenceTransactionType,omitempty"`
}

// DynamicDescriptors override the statement descriptor for the terminal
// session.
type DynamicDescriptors struct {
	MCC          string `json:"mcc,omitempty"`
	MerchantName string `json:"merchantName,omitempty"`
}

// BillingAddress is the optional AVS address block for account verification.
type BillingAddress struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Address   *Address `json:"address,omitempty"`
	Phone     *Phone   `json:"phone,omitempty"`
}

// Address is a postal address sub-block.
type Address struct {
	Street     string `json:"street,omitempty"`
	HouseNumberOrName string `json:"houseNumberOrName,omitempty"`
	City       string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Phone is a phone number sub-block.
type Phone struct {
	CountryCode string `json:"countryCode,omitempty"`
	Number      string `json:"number,omitempty"`
}

// CardVerificationContext carries a single tap's output between the
// orchestrator and the payload builders within one call. Never shared
// across calls and never persisted.
type CardVerificationContext struct {
	CardReaderID    string
	TransactionID   string
	GeneralCardData string
	PaymentCardData string
}

// TokenRequest requests Tap to Pay session credentials.
type TokenRequest struct {
	TerminalProfileID     string              `json:"terminalProfileId"`
	Channel               string              `json:"channel"`
	AccessTokenTimeToLive int                 `json:"accessTokenTimeToLive"`
	DynamicDescriptors    *DynamicDescriptors `json:"dynamicDescriptors,omitempty"`
	MerchantDetails       MerchantDetails     `json:"merchantDetails"`
	AppleMerchantID       *string             `json:"appleMerchantId,omitempty"`
}

// ChargesRequest is the sale/auth/capture/token-charge request.
type ChargesRequest struct {
	Amount                      Amount                       `json:"amount"`
	Source                      *Source                      `json:"source,omitempty"`
	TransactionDetails          TransactionDetails           `json:"transactionDetails"`
	TransactionInteraction      *TransactionInteraction      `json:"transactionInteraction,omitempty"`
	MerchantDetails             MerchantDetails              `json:"merchantDetails"`
	ReferenceTransactionDetails *ReferenceTransactionDetails `json:"referenceTransactionDetails,omitempty"`
}

// CancelsRequest voids a prior transaction by reference.
type CancelsRequest struct {
	Amount                      Amount                      `json:"amount"`
	ReferenceTransactionDetails ReferenceTransactionDetails `json:"referenceTransactionDetails"`
	MerchantDetails             MerchantDetails             `json:"merchantDetails"`
}

// RefundsRequest covers matched, unmatched and open refunds. Matched refunds
// carry only the reference; unmatched and open carry a fresh card source.
type RefundsRequest struct {
	Amount                      *Amount                      `json:"amount,omitempty"`
	Source                      *Source                      `json:"source,omitempty"`
	TransactionDetails          *TransactionDetails          `json:"transactionDetails,omitempty"`
	ReferenceTransactionDetails *ReferenceTransactionDetails `json:"referenceTransactionDetails,omitempty"`
	MerchantDetails             MerchantDetails              `json:"merchantDetails"`
}

// InquiryRequest looks up prior transactions by reference.
type InquiryRequest struct {
	ReferenceTransactionDetails ReferenceTransactionDetails `json:"referenceTransactionDetails"`
	MerchantDetails             MerchantDetails             `json:"merchantDetails"`
}

// AccountVerificationRequest verifies an account without moving money.
type AccountVerificationRequest struct {
	Source             Source              `json:"source"`
	TransactionDetails *TransactionDetails `json:"transactionDetails,omitempty"`
	BillingAddress     *BillingAddress     `json:"billingAddress,omitempty"`
	MerchantDetails    MerchantDetails     `json:"merchantDetails"`
}

// TokenizeRequest exchanges a card read for a stored payment token.
type TokenizeRequest struct {
	Source             Source             `json:"source"`
	TransactionDetails TransactionDetails `json:"transactionDetails"`
	MerchantDetails    MerchantDetails    `json:"merchantDetails"`
}

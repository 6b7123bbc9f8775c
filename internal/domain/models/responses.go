package models

// Gateway response shapes. The gateway contract is permissive and evolving,
// so every field is optional; decoding keeps whatever the gateway sent and
// re-encoding must not drop populated fields.

// TokenResponse is returned by the ttpcredentials endpoint. AccessToken is a
// three-segment signed token whose middle segment carries the expiry claim.
type TokenResponse struct {
	GatewayResponse *GatewayResponse `json:"gatewayResponse,omitempty"`
	AccessToken     *string          `json:"accessToken,omitempty"`
	TokenType       *string          `json:"tokenType,omitempty"`
	Error           []ErrorDetail    `json:"error,omitempty"`
}

// GatewayResponse is the common processing envelope on every response.
type GatewayResponse struct {
	TransactionType              *string                       `json:"transactionType,omitempty"`
	TransactionState             *string                       `json:"transactionState,omitempty"`
	TransactionOrigin            *string                       `json:"transactionOrigin,omitempty"`
	TransactionProcessingDetails *TransactionProcessingDetails `json:"transactionProcessingDetails,omitempty"`
}

// TransactionProcessingDetails carries the gateway's correlation identifiers.
type TransactionProcessingDetails struct {
	OrderID              *string `json:"orderId,omitempty"`
	TransactionTimestamp *string `json:"transactionTimestamp,omitempty"`
	APITraceID           *string `json:"apiTraceId,omitempty"`
	ClientRequestID      *string `json:"clientRequestId,omitempty"`
	TransactionID        *string `json:"transactionId,omitempty"`
}

// ResponseSource echoes the payment source. GeneralCardData is overwritten
// locally after a card read; the gateway's echo differs from the raw form
// the host needs for receipt display.
type ResponseSource struct {
	SourceType              *string       `json:"sourceType,omitempty"`
	GeneralCardData         *string       `json:"generalCardData,omitempty"`
	PaymentCardData         *string       `json:"paymentCardData,omitempty"`
	CardReaderID            *string       `json:"cardReaderId,omitempty"`
	CardReaderTransactionID *string       `json:"cardReaderTransactionId,omitempty"`
	TokenData               *string       `json:"tokenData,omitempty"`
	TokenSource             *string       `json:"tokenSource,omitempty"`
	Card                    *ResponseCard `json:"card,omitempty"`
}

// ResponseCard is the masked card block echoed by the gateway.
type ResponseCard struct {
	ExpirationMonth *string `json:"expirationMonth,omitempty"`
	ExpirationYear  *string `json:"expirationYear,omitempty"`
	Bin             *string `json:"bin,omitempty"`
	Last4           *string `json:"last4,omitempty"`
	Scheme          *string `json:"scheme,omitempty"`
}

// PaymentReceipt carries receipt data for approved transactions.
type PaymentReceipt struct {
	ApprovedAmount  *ReceiptAmount   `json:"approvedAmount,omitempty"`
	ProcessorResponseDetails *ProcessorResponseDetails `json:"processorResponseDetails,omitempty"`
}

// ReceiptAmount is the approved amount block on a receipt.
type ReceiptAmount struct {
	Total    *float64 `json:"total,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

// ProcessorResponseDetails is the processor's approval block.
type ProcessorResponseDetails struct {
	ApprovalStatus *string `json:"approvalStatus,omitempty"`
	ApprovalCode   *string `json:"approvalCode,omitempty"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	Processor      *string `json:"processor,omitempty"`
	ResponseCode   *string `json:"responseCode,omitempty"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
}

// PaymentToken is a stored-card token issued by the gateway.
type PaymentToken struct {
	TokenData      *string `json:"tokenData,omitempty"`
	TokenSource    *string `json:"tokenSource,omitempty"`
	TokenResponseCode        *string `json:"tokenResponseCode,omitempty"`
	TokenResponseDescription *string `json:"tokenResponseDescription,omitempty"`
}

// ErrorDetail is one entry of a gateway error block. Presence of any entry
// implies a non-2xx or business-rejected outcome.
type ErrorDetail struct {
	Type    *string `json:"type,omitempty"`
	Code    *string `json:"code,omitempty"`
	Field   *string `json:"field,omitempty"`
	Message *string `json:"message,omitempty"`
}

// CommerceHubResponse is the response shape for charges, cancels and refunds.
type CommerceHubResponse struct {
	GatewayResponse        *GatewayResponse        `json:"gatewayResponse,omitempty"`
	Source                 *ResponseSource         `json:"source,omitempty"`
	PaymentReceipt         *PaymentReceipt         `json:"paymentReceipt,omitempty"`
	TransactionDetails     *TransactionDetails     `json:"transactionDetails,omitempty"`
	TransactionInteraction *TransactionInteraction `json:"transactionInteraction,omitempty"`
	MerchantDetails        *MerchantDetails        `json:"merchantDetails,omitempty"`
	PaymentTokens          []PaymentToken          `json:"paymentTokens,omitempty"`
	Error                  []ErrorDetail           `json:"error,omitempty"`
}

// InquireResponse is the transaction-inquiry result; the gateway may return
// multiple matching transactions.
type InquireResponse []CommerceHubResponse

// AccountVerificationResponse is returned by the accounts/verification
// endpoint.
type AccountVerificationResponse struct {
	GatewayResponse *GatewayResponse `json:"gatewayResponse,omitempty"`
	Source          *ResponseSource  `json:"source,omitempty"`
	PaymentTokens   []PaymentToken   `json:"paymentTokens,omitempty"`
	Error           []ErrorDetail    `json:"error,omitempty"`
}

// TokenizeCardResponse is returned by the tokens endpoint.
type TokenizeCardResponse struct {
	GatewayResponse *GatewayResponse `json:"gatewayResponse,omitempty"`
	Source          *ResponseSource  `json:"source,omitempty"`
	PaymentTokens   []PaymentToken   `json:"paymentTokens,omitempty"`
	Error           []ErrorDetail    `json:"error,omitempty"`
}

// ServerErrorResponse is the body shape of gateway rejections.
type ServerErrorResponse struct {
	GatewayResponse *GatewayResponse `json:"gatewayResponse,omitempty"`
	Error           []ErrorDetail    `json:"error,omitempty"`
}

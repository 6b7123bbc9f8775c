package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// TapError is the single error shape surfaced to the host application for
// every failure path: precondition checks, card-reader failures, transport
// failures, decode failures, and gateway rejections. Nothing else crosses
// the SDK boundary.
type TapError struct {
	Title         string
	Message       string
	FailureReason string
	Err           error
}

// Error implements the error interface
func (e *TapError) Error() string {
	if e.FailureReason != "" {
		return fmt.Sprintf("%s: %s (reason: %s)", e.Title, e.Message, e.FailureReason)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *TapError) Unwrap() error {
	return e.Err
}

// WithReason attaches diagnostic context to the error
func (e *TapError) WithReason(reason string) *TapError {
	e.FailureReason = reason
	return e
}

// NewTapError creates a new TapError
func NewTapError(title, message string) *TapError {
	return &TapError{Title: title, Message: message}
}

// WrapTapError wraps an existing error, preserving it for errors.As
func WrapTapError(title, message string, err error) *TapError {
	te := &TapError{Title: title, Message: message, Err: err}
	if err != nil {
		te.FailureReason = err.Error()
	}
	return te
}

// AsTapError normalizes any error into a TapError. Errors that already are
// one pass through unchanged so titles set at the origin survive wrapping.
func AsTapError(err error) *TapError {
	var te *TapError
	if errors.As(err, &te) {
		return te
	}
	return WrapTapError(TitleUnknownError, "An unknown error occurred", err)
}

// Error titles. Tests and host applications match on these.
const (
	TitleMissingToken        = "Missing Token"
	TitleTokenRequest        = "Token Request"
	TitleReaderNotIdentified = "Reader Not Identified"
	TitleCardReaderError     = "Card Reader Error"
	TitleCardDataCorrupt     = "Payment Card data missing or corrupt"
	TitleCardUnreadable      = "Card Unable To Be Read"
	TitleInvalidCaptureFlag  = "Invalid Capture Flag"
	TitleInvalidSession      = "Invalid Session"
	TitleInvalidURL          = "Invalid URL"
	TitleMissingBody         = "Missing Body"
	TitleUnknownError        = "Unknown Error"
	TitleDecodeResponse      = "Decode Response"
	TitleBadRequest          = "Bad Request"
	TitleUnauthorized        = "Unauthorized"
	TitleNotFound            = "Not Found"
	TitleInternalError       = "Internal Error"
	TitleNotImplemented      = "Not Implemented"
	TitleBadGateway          = "Bad Gateway"
	TitleServiceUnavailable  = "Service Unavailable"
	TitleGatewayTimeout      = "Gateway Timeout"
	TitleUnexpectedError     = "Unexpected Error"
	TitleCharges             = "Charges"
	TitleCancels             = "Cancels"
	TitleRefunds             = "Refunds"
	TitleAccountVerification = "Account Verification"
	TitleTokenizeCard        = "Tokenize Card"
	TitleInquiry             = "Transaction Inquiry"
)

// Precondition and card-data errors. Local checks, never reach the network.

func NewMissingTokenError() *TapError {
	return NewTapError(TitleMissingToken, "A session token is required. Call RequestSessionToken first")
}

func NewReaderNotIdentifiedError(err error) *TapError {
	return WrapTapError(TitleReaderNotIdentified, "The card reader identifier could not be obtained", err)
}

func NewInvalidCaptureFlagError(transactionType string, captureFlag bool) *TapError {
	return NewTapError(TitleInvalidCaptureFlag,
		fmt.Sprintf("capture flag %t is not valid for transaction type %q", captureFlag, transactionType))
}

func NewCardDataCorruptError() *TapError {
	return NewTapError(TitleCardDataCorrupt, "The card read did not return complete card data")
}

func NewCardReaderError(err error) *TapError {
	return WrapTapError(TitleCardReaderError, "The card reader operation failed", err)
}

func NewCardUnreadableError() *TapError {
	return NewTapError(TitleCardUnreadable, "The card was unable to be read")
}

func NewInvalidSessionError() *TapError {
	return NewTapError(TitleInvalidSession, "No reader session is active. Call InitializeSession first")
}

// Transport errors. Defensive failures indicate a programming error, not a
// transient condition, and must not be retried.

func NewInvalidURLError(rawURL string) *TapError {
	return NewTapError(TitleInvalidURL, "The request URL could not be constructed").WithReason(rawURL)
}

func NewMissingBodyError(err error) *TapError {
	return WrapTapError(TitleMissingBody, "The request payload could not be serialized", err)
}

func NewUnknownError(err error) *TapError {
	return WrapTapError(TitleUnknownError, "The request could not be completed", err)
}

func NewDecodeResponseError(err error) *TapError {
	return WrapTapError(TitleDecodeResponse, "The gateway response did not match the expected shape", err)
}

// NewStatusError maps a non-2xx HTTP status to its titled error, preserving
// the raw response body as the failure reason. Gateway error bodies carry
// business-meaningful codes that must not be discarded.
func NewStatusError(statusCode int, body string) *TapError {
	var title string
	switch statusCode {
	case http.StatusBadRequest:
		title = TitleBadRequest
	case http.StatusUnauthorized:
		title = TitleUnauthorized
	case http.StatusNotFound:
		title = TitleNotFound
	case http.StatusInternalServerError:
		title = TitleInternalError
	case http.StatusNotImplemented:
		title = TitleNotImplemented
	case http.StatusBadGateway:
		title = TitleBadGateway
	case http.StatusServiceUnavailable:
		title = TitleServiceUnavailable
	case http.StatusGatewayTimeout:
		title = TitleGatewayTimeout
	default:
		title = TitleUnexpectedError
	}
	return &TapError{
		Title:         title,
		Message:       fmt.Sprintf("The gateway rejected the request with status %d", statusCode),
		FailureReason: body,
	}
}

// IsTitle checks whether an error is a TapError with the given title
func IsTitle(err error, title string) bool {
	var te *TapError
	if errors.As(err, &te) {
		return te.Title == title
	}
	return false
}

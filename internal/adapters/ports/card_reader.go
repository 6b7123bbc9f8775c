package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrAccountAlreadyLinked is returned by CardReader.LinkAccount when the
// device is already linked to the merchant account. Re-linking is a benign
// no-op, so callers treat this as success.
var ErrAccountAlreadyLinked = errors.New("account already linked")

// CardReader models the platform's Tap to Pay capability. The SDK never
// touches the NFC hardware directly; everything goes through this interface
// so the capability can be mocked in tests.
type CardReader interface {
	// IsSupported reports whether the device can act as a contactless
	// reader. No I/O.
	IsSupported() bool

	// ReaderIdentifier returns the stable identifier of this device's
	// reader. The identifier is sent to the gateway as cardReaderId.
	ReaderIdentifier(ctx context.Context) (string, error)

	// LinkAccount links the device to the merchant account named by the
	// session token. Returns ErrAccountAlreadyLinked if the device is
	// already linked.
	LinkAccount(ctx context.Context, token string) error

	// IsAccountLinked reports whether the device is linked to the merchant
	// account. Not available on all platform versions.
	IsAccountLinked(ctx context.Context, token string) (bool, error)

	// PrepareSession establishes a reader session for the merchant account.
	PrepareSession(ctx context.Context, token string) (ReaderSession, error)
}

// ReaderSession is an established card-reader session. Verify and Read both
// present the platform's tap sheet and block until the tap completes or the
// user dismisses it.
type ReaderSession interface {
	// Verify performs a non-financial tap (account verification, tokenize).
	Verify(ctx context.Context, currencyCode, reason string) (*ReadResult, error)

	// Read performs a financial tap for the given amount.
	Read(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ReadResult, error)

	// Events streams named lifecycle events for the session. The channel is
	// closed when the session ends.
	Events() <-chan ReaderEvent
}

// ReadResult is the output of a single tap. The card data blobs are opaque
// encrypted payloads; the SDK forwards them to the gateway as-is.
type ReadResult struct {
	ID              string
	GeneralCardData *string
	PaymentCardData *string
}

// ReaderEvent is a named lifecycle event emitted by a reader session.
type ReaderEvent struct {
	Name string
}

// Reader event names surfaced by the platform capability.
const (
	ReaderEventNotReady = "notReady"
)

package cardreader

import (
	"context"
	"errors"
	"sync"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/kevin07696/tap-to-pay-service/internal/domain"
	"github.com/kevin07696/tap-to-pay-service/pkg/observability"
	"github.com/shopspring/decimal"
)

// EventSink receives named reader lifecycle events. The sink typically
// drives presented state, so implementations must be safe to call from a
// goroutine other than the caller's.
type EventSink func(event ports.ReaderEvent)

// Adapter wraps the platform's Tap to Pay capability and normalizes its
// failures into the SDK's uniform error type.
type Adapter struct {
	reader ports.CardReader
	logger ports.Logger

	mu      sync.Mutex
	session ports.ReaderSession
}

// NewAdapter creates a card-reader adapter with dependency injection
func NewAdapter(reader ports.CardReader, logger ports.Logger) *Adapter {
	return &Adapter{
		reader: reader,
		logger: logger,
	}
}

// IsSupported reports whether the device can accept contactless payments.
// No I/O.
func (a *Adapter) IsSupported() bool {
	return a.reader.IsSupported()
}

// ReaderIdentifier returns the device's reader identifier for use as the
// gateway's cardReaderId.
func (a *Adapter) ReaderIdentifier(ctx context.Context) (string, error) {
	id, err := a.reader.ReaderIdentifier(ctx)
	if err != nil {
		return "", domain.NewReaderNotIdentifiedError(err)
	}
	return id, nil
}

// LinkAccount links the device to the merchant account. "Already linked" is
// swallowed: re-linking is a benign no-op from the caller's perspective.
func (a *Adapter) LinkAccount(ctx context.Context, token string) error {
	err := a.reader.LinkAccount(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrAccountAlreadyLinked) {
			a.logger.Debug("account already linked, treating as success")
			return nil
		}
		return domain.NewCardReaderError(err)
	}
	return nil
}

// IsAccountLinked reports whether the device is linked to the merchant
// account. Version-gated in the underlying capability.
func (a *Adapter) IsAccountLinked(ctx context.Context, token string) (bool, error) {
	linked, err := a.reader.IsAccountLinked(ctx, token)
	if err != nil {
		return false, domain.NewCardReaderError(err)
	}
	return linked, nil
}

// PrepareSession establishes a reader session and starts draining its event
// stream. Named events are forwarded to the sink until the capability closes
// the channel; the drain runs alongside the request flow and interacts with
// it only through the sink.
func (a *Adapter) PrepareSession(ctx context.Context, token string, sink EventSink) error {
	session, err := a.reader.PrepareSession(ctx, token)
	if err != nil {
		return domain.NewCardReaderError(err)
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	if sink != nil {
		go func() {
			for event := range session.Events() {
				a.logger.Debug("reader event", ports.String("event", event.Name))
				sink(event)
			}
		}()
	}

	return nil
}

// VerifyCard performs a non-financial tap. Fails if the user dismisses the
// tap sheet or the sheet cannot appear.
func (a *Adapter) VerifyCard(ctx context.Context, currencyCode, reason string) (*ports.ReadResult, error) {
	session, err := a.currentSession()
	if err != nil {
		return nil, err
	}

	result, err := session.Verify(ctx, currencyCode, reason)
	observability.ObserveCardRead("verify", err)
	if err != nil {
		return nil, domain.NewCardReaderError(err)
	}
	return result, nil
}

// ReadCard performs a financial tap for the given amount. Fails with
// "card unable to be read" unless both card data blobs are present.
func (a *Adapter) ReadCard(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ports.ReadResult, error) {
	session, err := a.currentSession()
	if err != nil {
		return nil, err
	}

	result, err := session.Read(ctx, amount, currencyCode, transactionType)
	observability.ObserveCardRead("read", err)
	if err != nil {
		return nil, domain.NewCardReaderError(err)
	}
	// A tap that produced neither blob means the card could not be read at
	// all. A partially populated result is passed up for the per-field
	// corrupt-data check.
	if result == nil || (result.GeneralCardData == nil && result.PaymentCardData == nil) {
		return nil, domain.NewCardUnreadableError()
	}
	return result, nil
}

func (a *Adapter) currentSession() (ports.ReaderSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, domain.NewInvalidSessionError()
	}
	return a.session, nil
}

package cardreader

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/kevin07696/tap-to-pay-service/internal/domain"
	"github.com/kevin07696/tap-to-pay-service/test/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkAccount_AlreadyLinkedIsSuccess(t *testing.T) {
	reader := mocks.NewMockCardReader()
	reader.LinkAccountFunc = func(ctx context.Context, token string) error {
		return fmt.Errorf("platform: %w", ports.ErrAccountAlreadyLinked)
	}
	adapter := NewAdapter(reader, mocks.NewMockLogger())

	err := adapter.LinkAccount(context.Background(), "token")
	assert.NoError(t, err, "re-linking is a benign no-op")
}

func TestLinkAccount_OtherErrorsPropagate(t *testing.T) {
	reader := mocks.NewMockCardReader()
	reader.LinkAccountFunc = func(ctx context.Context, token string) error {
		return errors.New("entitlement missing")
	}
	adapter := NewAdapter(reader, mocks.NewMockLogger())

	err := adapter.LinkAccount(context.Background(), "token")
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleCardReaderError))
	assert.Contains(t, err.Error(), "entitlement missing")
}

func TestReadCard_RequiresSession(t *testing.T) {
	adapter := NewAdapter(mocks.NewMockCardReader(), mocks.NewMockLogger())

	_, err := adapter.ReadCard(context.Background(), decimal.NewFromFloat(10.00), "USD", "CHARGES")
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleInvalidSession))
}

func TestReadCard_UnreadableWhenNoBlobs(t *testing.T) {
	reader := mocks.NewMockCardReader()
	session := mocks.NewMockReaderSession()
	session.ReadFunc = func(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ports.ReadResult, error) {
		return &ports.ReadResult{ID: "T1"}, nil
	}
	reader.PrepareSessionFunc = func(ctx context.Context, token string) (ports.ReaderSession, error) {
		return session, nil
	}

	adapter := NewAdapter(reader, mocks.NewMockLogger())
	require.NoError(t, adapter.PrepareSession(context.Background(), "token", nil))

	_, err := adapter.ReadCard(context.Background(), decimal.NewFromFloat(10.00), "USD", "CHARGES")
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleCardUnreadable))
}

func TestReadCard_UserDismissal(t *testing.T) {
	reader := mocks.NewMockCardReader()
	session := mocks.NewMockReaderSession()
	session.ReadFunc = func(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ports.ReadResult, error) {
		return nil, errors.New("sheet dismissed by user")
	}
	reader.PrepareSessionFunc = func(ctx context.Context, token string) (ports.ReaderSession, error) {
		return session, nil
	}

	adapter := NewAdapter(reader, mocks.NewMockLogger())
	require.NoError(t, adapter.PrepareSession(context.Background(), "token", nil))

	_, err := adapter.ReadCard(context.Background(), decimal.NewFromFloat(10.00), "USD", "CHARGES")
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleCardReaderError))
	assert.Contains(t, err.Error(), "sheet dismissed by user")
}

func TestPrepareSession_ForwardsEventsToSink(t *testing.T) {
	reader := mocks.NewMockCardReader()
	session := mocks.NewMockReaderSession()
	reader.PrepareSessionFunc = func(ctx context.Context, token string) (ports.ReaderSession, error) {
		return session, nil
	}

	adapter := NewAdapter(reader, mocks.NewMockLogger())

	received := make(chan ports.ReaderEvent, 2)
	err := adapter.PrepareSession(context.Background(), "token", func(event ports.ReaderEvent) {
		received <- event
	})
	require.NoError(t, err)

	session.EventCh <- ports.ReaderEvent{Name: ports.ReaderEventNotReady}
	close(session.EventCh)

	select {
	case event := <-received:
		assert.Equal(t, ports.ReaderEventNotReady, event.Name)
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded to the sink")
	}
}

func TestVerifyCard_NormalizesErrors(t *testing.T) {
	reader := mocks.NewMockCardReader()
	session := mocks.NewMockReaderSession()
	session.VerifyFunc = func(ctx context.Context, currencyCode, reason string) (*ports.ReadResult, error) {
		return nil, errors.New("sheet could not appear")
	}
	reader.PrepareSessionFunc = func(ctx context.Context, token string) (ports.ReaderSession, error) {
		return session, nil
	}

	adapter := NewAdapter(reader, mocks.NewMockLogger())
	require.NoError(t, adapter.PrepareSession(context.Background(), "token", nil))

	_, err := adapter.VerifyCard(context.Background(), "USD", "lookUp")
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleCardReaderError))
}

func TestReaderIdentifier_Unavailable(t *testing.T) {
	reader := mocks.NewMockCardReader()
	reader.ReaderIdentifierFunc = func(ctx context.Context) (string, error) {
		return "", errors.New("not provisioned")
	}
	adapter := NewAdapter(reader, mocks.NewMockLogger())

	_, err := adapter.ReaderIdentifier(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsTitle(err, domain.TitleReaderNotIdentified))
}

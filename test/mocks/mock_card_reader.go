package mocks

import (
	"context"

	"github.com/kevin07696/tap-to-pay-service/internal/adapters/ports"
	"github.com/shopspring/decimal"
)

// MockCardReader is a mock implementation of the CardReader capability for
// testing
type MockCardReader struct {
	IsSupportedFunc      func() bool
	ReaderIdentifierFunc func(ctx context.Context) (string, error)
	LinkAccountFunc      func(ctx context.Context, token string) error
	IsAccountLinkedFunc  func(ctx context.Context, token string) (bool, error)
	PrepareSessionFunc   func(ctx context.Context, token string) (ports.ReaderSession, error)

	LinkAccountCalls    []string
	PrepareSessionCalls []string
}

// NewMockCardReader creates a mock card reader with permissive defaults
func NewMockCardReader() *MockCardReader {
	return &MockCardReader{}
}

func (m *MockCardReader) IsSupported() bool {
	if m.IsSupportedFunc != nil {
		return m.IsSupportedFunc()
	}
	return true
}

func (m *MockCardReader) ReaderIdentifier(ctx context.Context) (string, error) {
	if m.ReaderIdentifierFunc != nil {
		return m.ReaderIdentifierFunc(ctx)
	}
	return "mock-reader", nil
}

func (m *MockCardReader) LinkAccount(ctx context.Context, token string) error {
	m.LinkAccountCalls = append(m.LinkAccountCalls, token)
	if m.LinkAccountFunc != nil {
		return m.LinkAccountFunc(ctx, token)
	}
	return nil
}

func (m *MockCardReader) IsAccountLinked(ctx context.Context, token string) (bool, error) {
	if m.IsAccountLinkedFunc != nil {
		return m.IsAccountLinkedFunc(ctx, token)
	}
	return true, nil
}

func (m *MockCardReader) PrepareSession(ctx context.Context, token string) (ports.ReaderSession, error) {
	m.PrepareSessionCalls = append(m.PrepareSessionCalls, token)
	if m.PrepareSessionFunc != nil {
		return m.PrepareSessionFunc(ctx, token)
	}
	return NewMockReaderSession(), nil
}

// MockReaderSession is a mock implementation of ReaderSession for testing
type MockReaderSession struct {
	VerifyFunc func(ctx context.Context, currencyCode, reason string) (*ports.ReadResult, error)
	ReadFunc   func(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ports.ReadResult, error)

	VerifyCalls int
	ReadCalls   int
	EventCh     chan ports.ReaderEvent
}

// NewMockReaderSession creates a mock reader session with a buffered event
// channel
func NewMockReaderSession() *MockReaderSession {
	return &MockReaderSession{
		EventCh: make(chan ports.ReaderEvent, 8),
	}
}

func (m *MockReaderSession) Verify(ctx context.Context, currencyCode, reason string) (*ports.ReadResult, error) {
	m.VerifyCalls++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, currencyCode, reason)
	}
	general := "Zm9v"
	payment := "YmFy"
	return &ports.ReadResult{ID: "mock-verify", GeneralCardData: &general, PaymentCardData: &payment}, nil
}

func (m *MockReaderSession) Read(ctx context.Context, amount decimal.Decimal, currencyCode, transactionType string) (*ports.ReadResult, error) {
	m.ReadCalls++
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, amount, currencyCode, transactionType)
	}
	general := "Zm9v"
	payment := "YmFy"
	return &ports.ReadResult{ID: "mock-read", GeneralCardData: &general, PaymentCardData: &payment}, nil
}

func (m *MockReaderSession) Events() <-chan ports.ReaderEvent {
	return m.EventCh
}

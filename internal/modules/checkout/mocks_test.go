package checkout

import (
	"context"

	"gorm.io/datatypes"

	"github.com/heinja/payments/internal/modules/provider"
)

type fakeTokenStore struct {
	tokens    map[string]*CheckoutToken
	events    []*ConfirmEvent
	saveCalls int

	saveErr       error
	transitionErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*CheckoutToken{}}
}

func (f *fakeTokenStore) Save(_ context.Context, tok *CheckoutToken) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *tok
	f.tokens[tok.Token] = &cp
	return nil
}

func (f *fakeTokenStore) FindByToken(_ context.Context, token string) (*CheckoutToken, error) {
	tok, ok := f.tokens[token]
	if !ok {
		return nil, ErrUnknownToken
	}
	cp := *tok
	return &cp, nil
}

func (f *fakeTokenStore) MarkCompleted(_ context.Context, token string, raw []byte) (bool, error) {
	return f.transition(token, StatusCompleted, raw)
}

func (f *fakeTokenStore) MarkFailed(_ context.Context, token string, raw []byte) (bool, error) {
	return f.transition(token, StatusFailed, raw)
}

func (f *fakeTokenStore) transition(token, to string, raw []byte) (bool, error) {
	if f.transitionErr != nil {
		return false, f.transitionErr
	}
	tok, ok := f.tokens[token]
	if !ok || tok.Status != StatusPending {
		return false, nil
	}
	tok.Status = to
	if len(raw) > 0 {
		tok.RawOutput = datatypes.JSON(raw)
	}
	return true, nil
}

func (f *fakeTokenStore) RecordConfirmEvent(_ context.Context, ev *ConfirmEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeResolver struct {
	ref        *ReferenceDetails
	resolveErr error

	hints     *RedirectHints
	authErr   error
	authCalls int
}

func (f *fakeResolver) Resolve(_ context.Context, refType, refID string) (*ReferenceDetails, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.ref, nil
}

func (f *fakeResolver) PaymentAuthorized(_ context.Context, refType, refID, status string) (*RedirectHints, error) {
	f.authCalls++
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.hints, nil
}

type fakeProvider struct {
	createCalls int
	getCalls    int
	listCalls   int

	lastCreate provider.CreateInvoiceRequest

	createInv *provider.Invoice
	createErr error
	getInv    *provider.Invoice
	getErr    error
	listErr   error
}

func (f *fakeProvider) CreateInvoice(_ context.Context, req provider.CreateInvoiceRequest) (*provider.Invoice, error) {
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createInv, nil
}

func (f *fakeProvider) GetInvoice(_ context.Context, invoiceID string) (*provider.Invoice, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getInv, nil
}

func (f *fakeProvider) ListInvoices(_ context.Context) ([]provider.Invoice, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

type fakeNotifier struct {
	receipts []Receipt
	err      error
}

func (f *fakeNotifier) SendReceipt(_ context.Context, r Receipt) error {
	f.receipts = append(f.receipts, r)
	return f.err
}

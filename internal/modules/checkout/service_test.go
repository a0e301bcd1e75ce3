package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heinja/payments/internal/modules/provider"
)

func testConfig() Config {
	return Config{
		GatewayName:         "Xendit",
		BaseURL:             "https://shop.example.com",
		SupportedCurrencies: []string{"IDR"},
		Fees:                DefaultFeeSchedule(),
		InvoiceDurationSecs: 600,
	}
}

func testReference() *ReferenceDetails {
	return &ReferenceDetails{
		Type:          "payment_request",
		ID:            "PR-0001",
		Amount:        100000,
		Currency:      "IDR",
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		Items: []LineItem{
			{Name: "Widget", Price: 50000, Quantity: 2},
		},
	}
}

func testInvoice(id string) *provider.Invoice {
	return &provider.Invoice{
		ID:         id,
		ExternalID: "PR-0001",
		Status:     "PENDING",
		InvoiceURL: "https://checkout.example.dev/" + id,
		Amount:     100000,
		Currency:   "IDR",
		Raw:        []byte(`{"id":"` + id + `","status":"PENDING"}`),
	}
}

func newTestService(t *testing.T, store *fakeTokenStore, refs *fakeResolver, pc *fakeProvider) *Service {
	t.Helper()
	rb, err := NewRedirectBuilder("https://shop.example.com")
	require.NoError(t, err)
	svc := NewService(testConfig(), store, refs, pc, rb)
	svc.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc
}

func TestRequestCheckout_UnsupportedCurrency(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{}
	svc := newTestService(t, store, &fakeResolver{ref: testReference()}, pc)

	_, err := svc.RequestCheckout(context.Background(), CheckoutRequest{
		Amount:        100000,
		Currency:      "USD",
		PayerEmail:    "budi@example.com",
		ReferenceType: "payment_request",
		ReferenceID:   "PR-0001",
	})

	var unsupported *UnsupportedCurrencyError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "USD", unsupported.Currency)

	// Fail-fast: no remote call, nothing persisted.
	assert.Equal(t, 0, pc.createCalls)
	assert.Equal(t, 0, store.saveCalls)
}

func TestRequestCheckout_Success(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{createInv: testInvoice("inv_123")}
	svc := newTestService(t, store, &fakeResolver{ref: testReference()}, pc)

	url, err := svc.RequestCheckout(context.Background(), CheckoutRequest{
		Amount:        100000,
		Currency:      "IDR",
		PayerName:     "Budi Santoso",
		PayerEmail:    "budi@example.com",
		Title:         "Payment for SO-0042",
		Description:   "Payment for SO-0042",
		ReferenceType: "payment_request",
		ReferenceID:   "PR-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.dev/inv_123", url)

	// Exactly one pending token, pointing at the provider invoice.
	require.Equal(t, 1, store.saveCalls)
	tok := store.tokens["PR-0001"]
	require.NotNil(t, tok)
	assert.Equal(t, StatusPending, tok.Status)
	assert.Equal(t, "inv_123", tok.ProviderInvoiceID)
	assert.Equal(t, "payment_request", tok.ReferenceType)
	assert.JSONEq(t, `{"id":"inv_123","status":"PENDING"}`, string(tok.RawOutput))

	// The invoice is keyed by the token and both redirects hit confirm.
	assert.Equal(t, "PR-0001", pc.lastCreate.ExternalID)
	wantConfirm := "https://shop.example.com/confirm_payment?token=PR-0001"
	assert.Equal(t, wantConfirm, pc.lastCreate.SuccessRedirectURL)
	assert.Equal(t, wantConfirm, pc.lastCreate.FailureRedirectURL)

	// Single gateway fee computed off the reference grand total.
	require.Len(t, pc.lastCreate.Fees, 1)
	assert.Equal(t, "GATEWAY", pc.lastCreate.Fees[0].Type)
	assert.Equal(t, int64(4000), pc.lastCreate.Fees[0].Value)

	require.Len(t, pc.lastCreate.Items, 1)
	assert.Equal(t, "Widget", pc.lastCreate.Items[0].Name)
	assert.Equal(t, 2, pc.lastCreate.Items[0].Quantity)
}

func TestRequestCheckout_InvalidReference(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{}
	refs := &fakeResolver{resolveErr: errors.New("not a payment request")}
	svc := newTestService(t, store, refs, pc)

	_, err := svc.RequestCheckout(context.Background(), CheckoutRequest{
		Amount:        100000,
		Currency:      "IDR",
		PayerEmail:    "budi@example.com",
		ReferenceType: "sales_invoice",
		ReferenceID:   "SI-0001",
	})

	require.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, 0, pc.createCalls)
	assert.Equal(t, 0, store.saveCalls)
}

func TestRequestCheckout_ProviderFailure_PersistsNothing(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{createErr: &provider.Error{StatusCode: 503, Message: "upstream down"}}
	svc := newTestService(t, store, &fakeResolver{ref: testReference()}, pc)

	_, err := svc.RequestCheckout(context.Background(), CheckoutRequest{
		Amount:        100000,
		Currency:      "IDR",
		PayerEmail:    "budi@example.com",
		ReferenceType: "payment_request",
		ReferenceID:   "PR-0001",
	})

	var unavailable *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 0, store.saveCalls)
}

func TestRequestCheckout_SupersedesPendingToken(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{createInv: testInvoice("inv_1")}
	svc := newTestService(t, store, &fakeResolver{ref: testReference()}, pc)

	req := CheckoutRequest{
		Amount:        100000,
		Currency:      "IDR",
		PayerEmail:    "budi@example.com",
		ReferenceType: "payment_request",
		ReferenceID:   "PR-0001",
	}

	_, err := svc.RequestCheckout(context.Background(), req)
	require.NoError(t, err)

	// A second request for the same reference replaces the pending token.
	pc.createInv = testInvoice("inv_2")
	_, err = svc.RequestCheckout(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, store.saveCalls)
	tok := store.tokens["PR-0001"]
	require.NotNil(t, tok)
	assert.Equal(t, "inv_2", tok.ProviderInvoiceID)
	assert.Equal(t, StatusPending, tok.Status)
}

func TestRequestCheckout_MobileNumberIsOptional(t *testing.T) {
	store := newFakeTokenStore()
	pc := &fakeProvider{createInv: testInvoice("inv_1")}
	ref := testReference() // no mobile on the customer record
	svc := newTestService(t, store, &fakeResolver{ref: ref}, pc)

	req := CheckoutRequest{
		Amount:        100000,
		Currency:      "IDR",
		PayerName:     "Budi Santoso",
		PayerEmail:    "budi@example.com",
		ReferenceType: "payment_request",
		ReferenceID:   "PR-0001",
	}

	_, err := svc.RequestCheckout(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, pc.lastCreate.Customer.MobileNumber)

	ref.CustomerMobile = "+628123456789"
	_, err = svc.RequestCheckout(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "+628123456789", pc.lastCreate.Customer.MobileNumber)
}

func TestValidateCredentials(t *testing.T) {
	pc := &fakeProvider{}
	svc := newTestService(t, newFakeTokenStore(), &fakeResolver{}, pc)

	require.NoError(t, svc.ValidateCredentials(context.Background()))
	assert.Equal(t, 1, pc.listCalls)

	pc.listErr = &provider.Error{StatusCode: 401, Message: "bad key"}
	err := svc.ValidateCredentials(context.Background())

	var unavailable *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

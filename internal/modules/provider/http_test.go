package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_CreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/invoices", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "xnd_test_key", user)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateInvoiceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PR-0001", req.ExternalID)
		assert.Equal(t, int64(100000), req.Amount)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"inv_123","external_id":"PR-0001","status":"PENDING","invoice_url":"https://checkout.example.dev/inv_123"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "xnd_test_key")
	inv, err := c.CreateInvoice(context.Background(), CreateInvoiceRequest{
		ExternalID: "PR-0001",
		PayerEmail: "budi@example.com",
		Amount:     100000,
		Currency:   "IDR",
	})
	require.NoError(t, err)

	assert.Equal(t, "inv_123", inv.ID)
	assert.Equal(t, "PR-0001", inv.ExternalID)
	assert.Equal(t, "https://checkout.example.dev/inv_123", inv.InvoiceURL)
	assert.NotEmpty(t, inv.Raw)
}

func TestHTTPClient_GetInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/invoices/inv_123", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"inv_123","status":"PAID"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "xnd_test_key")
	inv, err := c.GetInvoice(context.Background(), "inv_123")
	require.NoError(t, err)

	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestHTTPClient_ListInvoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/invoices", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"inv_1"},{"id":"inv_2"}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "xnd_test_key")
	invoices, err := c.ListInvoices(context.Background())
	require.NoError(t, err)

	assert.Len(t, invoices, 2)
}

func TestHTTPClient_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_code":"API_VALIDATION_ERROR","message":"external_id is required"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "xnd_test_key")
	_, err := c.CreateInvoice(context.Background(), CreateInvoiceRequest{})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "API_VALIDATION_ERROR", perr.Code)
	assert.Contains(t, perr.Error(), "external_id is required")
}

func TestHTTPClient_RemoteErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "xnd_test_key")
	_, err := c.GetInvoice(context.Background(), "inv_123")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, "upstream timeout", perr.Message)
}

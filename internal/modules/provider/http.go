package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient talks to a Xendit-style hosted-invoice REST API. The API key is
// sent as the basic-auth username, which is how these gateways authenticate
// server-to-server calls.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeInvoice(raw)
}

func (c *HTTPClient) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v2/invoices/"+url.PathEscape(invoiceID), nil)
	if err != nil {
		return nil, err
	}
	return decodeInvoice(raw)
}

func (c *HTTPClient) ListInvoices(ctx context.Context) ([]Invoice, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v2/invoices", nil)
	if err != nil {
		return nil, err
	}
	var invoices []Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, "")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		return nil, parseError(res.StatusCode, raw)
	}
	return raw, nil
}

func decodeInvoice(raw []byte) (*Invoice, error) {
	var inv Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, err
	}
	inv.Raw = raw
	return &inv, nil
}

func parseError(status int, raw []byte) *Error {
	var body struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > 250 {
			msg = msg[:250]
		}
		return &Error{StatusCode: status, Message: msg}
	}
	return &Error{StatusCode: status, Code: body.ErrorCode, Message: body.Message}
}

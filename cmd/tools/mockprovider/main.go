package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Local stand-in for the hosted-invoice provider API. Create invoices against
// it, then flip them with POST /v2/invoices/{id}/pay or .../expire to exercise
// the confirm path end to end without touching the real gateway.

type invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

type store struct {
	mu       sync.Mutex
	invoices map[string]*invoice
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	s := &store{invoices: map[string]*invoice{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/invoices", s.handleCollection)
	mux.HandleFunc("/v2/invoices/", s.handleItem)

	log.Printf("mock provider listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func (s *store) handleCollection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		var in struct {
			ExternalID string `json:"external_id"`
			Amount     int64  `json:"amount"`
			Currency   string `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, http.StatusBadRequest, "API_VALIDATION_ERROR", "malformed invoice body")
			return
		}
		inv := &invoice{
			ID:         "inv_" + uuid.NewString(),
			ExternalID: in.ExternalID,
			Status:     "PENDING",
			Amount:     in.Amount,
			Currency:   in.Currency,
		}
		inv.InvoiceURL = "http://localhost" + "/pay/" + inv.ID
		s.invoices[inv.ID] = inv
		writeJSON(w, http.StatusOK, inv)

	case http.MethodGet:
		out := make([]*invoice, 0, len(s.invoices))
		for _, inv := range s.invoices {
			out = append(out, inv)
		}
		writeJSON(w, http.StatusOK, out)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method)
	}
}

func (s *store) handleItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rest := strings.TrimPrefix(r.URL.Path, "/v2/invoices/")
	id, action, _ := strings.Cut(rest, "/")

	inv, ok := s.invoices[id]
	if !ok {
		writeErr(w, http.StatusNotFound, "INVOICE_NOT_FOUND", fmt.Sprintf("no invoice %q", id))
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		writeJSON(w, http.StatusOK, inv)
	case r.Method == http.MethodPost && action == "pay":
		inv.Status = "PAID"
		writeJSON(w, http.StatusOK, inv)
	case r.Method == http.MethodPost && action == "expire":
		inv.Status = "EXPIRED"
		writeJSON(w, http.StatusOK, inv)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error_code": code, "message": msg})
}

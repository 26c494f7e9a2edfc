package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"smartspend/internal/category"
	"smartspend/internal/services"
	"smartspend/internal/store/memory"
)

func newTestServer() (*Server, *memory.Store) {
	mem := memory.New()
	svc := services.NewExpenseService(mem, mem.Budgets(), category.New(category.DefaultRules()))
	return NewServer(":0", svc), mem
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("index status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "SmartSpend") {
		t.Fatalf("index body missing heading")
	}
	if !strings.Contains(rr.Body.String(), "No transactions recorded yet") {
		t.Fatalf("empty store should render the empty state")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateExpenseValidationAndSuccess(t *testing.T) {
	srv, mem := newTestServer()

	// Wrong method
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Invalid amount
	rr = postForm(t, srv, "/expenses", url.Values{"description": {"x"}, "amount": {"abc"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422 for bad amount, got %d", rr.Code)
	}

	// Negative amount
	rr = postForm(t, srv, "/expenses", url.Values{"description": {"refund"}, "amount": {"-5"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422 for negative amount, got %d", rr.Code)
	}
	if items, _ := mem.Load(req.Context()); len(items) != 0 {
		t.Fatalf("rejected submissions must not be stored")
	}

	// Missing description
	rr = postForm(t, srv, "/expenses", url.Values{"amount": {"10"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422 for missing description, got %d", rr.Code)
	}

	// Success with auto-categorization
	rr = postForm(t, srv, "/expenses", url.Values{
		"description": {"Starbucks coffee"},
		"amount":      {"150"},
		"category":    {"auto"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Food") {
		t.Fatalf("expected Food category in response: %s", rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") == "" {
		t.Fatalf("expected HX-Trigger header on success")
	}

	items, _ := mem.Load(req.Context())
	if len(items) != 1 || items[0].Amount.Cents != 15000 {
		t.Fatalf("unexpected stored items: %v", items)
	}
}

func TestPaymentEndpoint(t *testing.T) {
	srv, mem := newTestServer()

	rr := postForm(t, srv, "/payments", url.Values{
		"recipient": {"not-valid"},
		"amount":    {"50"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422 for bad recipient, got %d", rr.Code)
	}

	rr = postForm(t, srv, "/payments", url.Values{
		"recipient": {"merchant@upi"},
		"amount":    {"120.50"},
		"note":      {"Split dinner"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "simulated") {
		t.Fatalf("payment response should mention simulation: %s", rr.Body.String())
	}

	items, _ := mem.Load(httptest.NewRequest("GET", "/", nil).Context())
	if len(items) != 1 || items[0].Description != "Split dinner to merchant@upi" {
		t.Fatalf("unexpected stored payment: %v", items)
	}
}

func TestBudgetEndpointAndAlerts(t *testing.T) {
	srv, _ := newTestServer()

	rr := postForm(t, srv, "/budgets", url.Values{"category": {""}, "limit": {"100"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422 for empty category, got %d", rr.Code)
	}

	rr = postForm(t, srv, "/budgets", url.Values{"category": {"Food"}, "limit": {"100"}})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Overspend this month, then the index must show the alert banner.
	rr = postForm(t, srv, "/expenses", url.Values{
		"description": {"Starbucks coffee"},
		"amount":      {"150"},
	})
	if rr.Code != 200 {
		t.Fatalf("expense failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Food exceeded by") {
		t.Fatalf("expected over-budget banner, body=%s", rr.Body.String())
	}
}

func TestMonthOverviewPartial(t *testing.T) {
	srv, _ := newTestServer()

	rr := postForm(t, srv, "/expenses", url.Values{
		"description": {"metro pass"},
		"amount":      {"30"},
		"date":        {"2024-03-05"},
	})
	if rr.Code != 200 {
		t.Fatalf("expense failed: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/month-overview?year=2024&month=3", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("partial status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "March 2024") || !strings.Contains(body, "Transport") {
		t.Fatalf("unexpected partial body: %s", body)
	}

	// Month out of range falls back to the current month, still 200.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=13", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("partial fallback status=%d", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Fatalf("missing security header %s", h)
		}
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finintel/finintel/internal/service"
	"github.com/finintel/finintel/internal/testutil"
)

func TestCalculatorSIPGet(t *testing.T) {
	h := NewCalculatorHandler(testutil.DiscardLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/finance/sip-calculator?monthly_investment=10000&expected_return=12&years=10", nil)
	rec := httptest.NewRecorder()

	h.SIP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.SIPResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.TotalInvestment != 1200000 {
		t.Errorf("expected invested 1200000, got %v", result.TotalInvestment)
	}
	if result.FinalAmount <= result.TotalInvestment {
		t.Error("expected final amount to exceed investment")
	}
}

func TestCalculatorSIPPost(t *testing.T) {
	h := NewCalculatorHandler(testutil.DiscardLogger())

	body := `{"monthly_investment":5000,"expected_return":10,"years":5}`
	req := httptest.NewRequest(http.MethodPost, "/finance/sip-calculator", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.SIP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.SIPResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.TotalInvestment != 300000 {
		t.Errorf("expected invested 300000, got %v", result.TotalInvestment)
	}
}

func TestCalculatorSIPRejectsBadInput(t *testing.T) {
	h := NewCalculatorHandler(testutil.DiscardLogger())

	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"missing_params", "", "INVALID_INVESTMENT"},
		{"zero_return", "?monthly_investment=100&expected_return=0&years=5", "INVALID_RETURN"},
		{"zero_years", "?monthly_investment=100&expected_return=10&years=0", "INVALID_YEARS"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/finance/sip-calculator"+test.query, nil)
			rec := httptest.NewRecorder()

			h.SIP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), test.wantCode) {
				t.Fatalf("expected code %s in body %s", test.wantCode, rec.Body.String())
			}
		})
	}
}

func TestCalculatorSIPRejectsBadJSON(t *testing.T) {
	h := NewCalculatorHandler(testutil.DiscardLogger())

	req := httptest.NewRequest(http.MethodPost, "/finance/sip-calculator", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.SIP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

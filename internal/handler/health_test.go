package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status ok, got %q", response.Status)
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name         string
		db           HealthChecker
		cache        HealthChecker
		wantCode     int
		wantStatus   string
		wantPostgres string
		wantRedis    string
	}{
		{
			name:         "all healthy",
			db:           &stubChecker{},
			cache:        &stubChecker{},
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPostgres: "ok",
			wantRedis:    "ok",
		},
		{
			name:         "database down",
			db:           &stubChecker{err: errors.New("connection refused")},
			cache:        &stubChecker{},
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "error: connection refused",
			wantRedis:    "ok",
		},
		{
			name:         "redis down",
			db:           &stubChecker{},
			cache:        &stubChecker{err: errors.New("timeout")},
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "ok",
			wantRedis:    "error: timeout",
		},
		{
			name:         "nothing configured",
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPostgres: "not configured",
			wantRedis:    "not configured",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewHealthHandler(test.db, test.cache)

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != test.wantCode {
				t.Fatalf("expected %d, got %d", test.wantCode, rec.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response.Status != test.wantStatus {
				t.Errorf("expected status %q, got %q", test.wantStatus, response.Status)
			}
			if response.Checks["postgres"] != test.wantPostgres {
				t.Errorf("expected postgres %q, got %q", test.wantPostgres, response.Checks["postgres"])
			}
			if response.Checks["redis"] != test.wantRedis {
				t.Errorf("expected redis %q, got %q", test.wantRedis, response.Checks["redis"])
			}
		})
	}
}

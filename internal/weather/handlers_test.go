package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrentHandlerUnconfigured(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/?city=london", nil)
	rec := httptest.NewRecorder()
	h.CurrentHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without an API key, got %d", rec.Code)
	}
}

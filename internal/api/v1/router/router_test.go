package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLegacyAPIRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/users/me/credits/use", strings.NewReader(`{"amount":10}`))
	rr := httptest.NewRecorder()

	legacyAPIRedirect(rr, req)

	// 308 keeps the method; 301 would let clients downgrade the POST to GET.
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusPermanentRedirect)
	}
	if loc := rr.Header().Get("Location"); loc != "/v1/users/me/credits/use" {
		t.Errorf("location = %q, want %q", loc, "/v1/users/me/credits/use")
	}
}

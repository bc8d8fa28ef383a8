package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOwnerID(t *testing.T) {
	handler := OwnerID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetOwnerID(r.Context()); got == "" {
			t.Error("owner ID missing from context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		ownerID    string
		wantStatus int
	}{
		{
			name:       "valid owner id",
			ownerID:    "6b1f5ef2-9c1e-4a6a-8f2d-0b1c2d3e4f50",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			ownerID:    "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed owner id",
			ownerID:    "not-a-uuid",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.ownerID != "" {
				req.Header.Set(OwnerIDHeader, tt.ownerID)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
			}
		})
	}
}

func TestGetOwnerID_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetOwnerID(req.Context()); got != "" {
		t.Errorf("GetOwnerID() = %q, want empty", got)
	}
}

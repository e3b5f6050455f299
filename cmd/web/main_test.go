package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHandler(t *testing.T) {
	h := newHandler(pageData{SSHHost: "racer.example.com", SSHPort: "2222"}, log.New(io.Discard))

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/", http.StatusOK, "ssh -t -p 2222 racer.example.com"},
		{"/missing", http.StatusNotFound, "404"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}
}

func TestHandlerEscapesHost(t *testing.T) {
	h := newHandler(pageData{SSHHost: "<script>", SSHPort: "22"}, log.New(io.Discard))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("host was not escaped")
	}
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMaxRequestSize(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	middleware := MaxRequestSize(64)(handler)

	t.Run("small body passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/nl", strings.NewReader(`{"utterance":"hi"}`))
		w := httptest.NewRecorder()
		middleware.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}
	})

	t.Run("declared oversized body rejected early", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/nl", strings.NewReader(strings.Repeat("x", 128)))
		req.ContentLength = 128
		w := httptest.NewRecorder()
		middleware.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected status 413, got %d", resp.StatusCode)
		}
	})

	t.Run("undeclared oversized body rejected on read", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/nl", strings.NewReader(strings.Repeat("x", 128)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		middleware.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Errorf("Expected status 413, got %d", resp.StatusCode)
		}
	})
}

func TestMaxRequestSizeDefault(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Non-positive limits fall back to the 1MB default
	middleware := MaxRequestSize(0)(handler)

	req := httptest.NewRequest("POST", "/nl", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

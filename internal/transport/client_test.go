package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Options{BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	return client
}

func TestDoAttachesBearerCapturedAtSendTime(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("X-Request-Id") == "" {
			t.Errorf("missing X-Request-Id header")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	if err := client.Do(ctx, http.MethodGet, "/ping", nil, nil); err != nil {
		t.Fatalf("Do err: %v", err)
	}
	client.SetBearer("tok1")
	if err := client.Do(ctx, http.MethodGet, "/ping", nil, nil); err != nil {
		t.Fatalf("Do err: %v", err)
	}
	client.ClearBearer()
	if err := client.Do(ctx, http.MethodGet, "/ping", nil, nil); err != nil {
		t.Fatalf("Do err: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"", "Bearer tok1", ""}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("request %d: got Authorization %q want %q", i, seen[i], want[i])
		}
	}
}

func TestDoEncodesAndDecodesJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["question"]})
	})

	var out struct {
		Echo string `json:"echo"`
	}
	if err := client.Do(context.Background(), http.MethodPost, "/ask", map[string]string{"question": "hi"}, &out); err != nil {
		t.Fatalf("Do err: %v", err)
	}
	if out.Echo != "hi" {
		t.Fatalf("unexpected echo: %q", out.Echo)
	}
}

func TestDoReturnsAPIErrorWithDetail(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"detail", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"error", `{"error":"Invalid token","status_code":401}`, "Invalid token"},
		{"message", `{"message":"boom"}`, "boom"},
		{"not json", `<html>oops</html>`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(tc.body))
			})

			err := client.Do(context.Background(), http.MethodGet, "/me", nil, nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != http.StatusUnauthorized || !apiErr.Unauthorized() {
				t.Fatalf("unexpected status %d", apiErr.Status)
			}
			if apiErr.Detail != tc.detail {
				t.Fatalf("unexpected detail: got %q want %q", apiErr.Detail, tc.detail)
			}
			if DetailOf(err) != tc.detail {
				t.Fatalf("DetailOf mismatch: %q", DetailOf(err))
			}
		})
	}
}

func TestDetailOfPlainError(t *testing.T) {
	if got := DetailOf(errors.New("network down")); got != "" {
		t.Fatalf("expected empty detail, got %q", got)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{BaseURL: "  "}); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	client, err := New(Options{BaseURL: "http://localhost:8000/"})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	if client.BaseURL() != "http://localhost:8000" {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
}

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/asksage-tools/asksage-cli/internal/api"
)

// newTestServer serves the token endpoint plus the given handlers, keyed
// by path.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/get-token-with-api-key", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode token request: %v", err)
		}
		if body["email"] != "user@example.com" {
			t.Errorf("email = %v", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{"access_token": "tok-123"},
		})
	})
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	return httptest.NewServer(mux)
}

func newTestClient(server *httptest.Server) *api.Client {
	return api.NewClient("user@example.com", "key", server.URL, server.URL, 10*time.Second)
}

func TestClient_GetDatasets(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/get-datasets": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if tok := r.Header.Get("x-access-tokens"); tok != "tok-123" {
				t.Errorf("x-access-tokens = %q", tok)
			}
			json.NewEncoder(w).Encode([]string{"user_custom_1_docs_content"})
		},
	})
	defer server.Close()

	raw, err := newTestClient(server).GetDatasets()
	if err != nil {
		t.Fatalf("GetDatasets() error = %v", err)
	}
	want := []any{"user_custom_1_docs_content"}
	if !reflect.DeepEqual(raw, want) {
		t.Errorf("GetDatasets() = %v, want %v", raw, want)
	}
}

func TestClient_ErrorBodyPassedThrough(t *testing.T) {
	// A status-convention error body is returned as a value, not an error,
	// so the caller's normalization can classify it.
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/query": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{"status": 429, "error": "rate limited"})
		},
	})
	defer server.Close()

	raw, err := newTestClient(server).Query("hello", api.QueryOptions{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", raw)
	}
	if m["error"] != "rate limited" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/query": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("bad gateway"))
		},
	})
	defer server.Close()

	if _, err := newTestClient(server).Query("hello", api.QueryOptions{}); err == nil {
		t.Error("expected error for non-JSON error body")
	}
}

func TestClient_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": 401, "error": "invalid key"})
	}))
	defer server.Close()

	client := api.NewClient("user@example.com", "bad", server.URL, server.URL, 10*time.Second)
	if _, err := client.GetDatasets(); err == nil {
		t.Error("expected error when no access token is issued")
	}
}

func TestClient_TokenCached(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/get-token-with-api-key", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-legacy"})
	})
	mux.HandleFunc("/count-monthly-tokens", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(1500)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server)
	for i := 0; i < 3; i++ {
		if _, err := client.CountMonthlyTokens(); err != nil {
			t.Fatalf("CountMonthlyTokens() error = %v", err)
		}
	}
	if tokenCalls != 1 {
		t.Errorf("token fetched %d times, want 1", tokenCalls)
	}
}

func TestClient_QueryBodyFields(t *testing.T) {
	var got map[string]any
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/query": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "response": "hi"})
		},
	})
	defer server.Close()

	_, err := newTestClient(server).Query("what is up", api.QueryOptions{Model: "gpt-4o", Persona: "dev"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got["message"] != "what is up" || got["model"] != "gpt-4o" || got["persona"] != "dev" {
		t.Errorf("request body = %v", got)
	}
}

func TestClient_Timeout(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/get-datasets": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			json.NewEncoder(w).Encode([]string{})
		},
	})
	defer server.Close()

	client := api.NewClient("user@example.com", "key", server.URL, server.URL, 10*time.Millisecond)
	if _, err := client.GetDatasets(); err == nil {
		t.Error("expected timeout error")
	}
}

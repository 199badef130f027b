package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	var gotKey, gotRID, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotRID = r.Header.Get("X-Request-ID")
		gotUA = r.Header.Get("User-Agent")

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, UserAgent: "app-vet", Headers: map[string]string{"X-API-Key": "k1"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := WithRequestID(context.Background(), "rid-1")
	var out map[string]string
	if err := c.DoJSON(ctx, http.MethodPost, "echo", nil, map[string]string{"msg": "hola"}, &out); err != nil {
		t.Fatalf("do: %v", err)
	}

	if out["echo"] != "hola" {
		t.Fatalf("expected echo hola, got %v", out)
	}
	if gotKey != "k1" || gotRID != "rid-1" || gotUA != "app-vet" {
		t.Fatalf("unexpected headers key=%q rid=%q ua=%q", gotKey, gotRID, gotUA)
	}
}

func TestDoJSON_Non2xxReturnsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(Options{})
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	if StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("expected 502 HTTPError, got %v", err)
	}
}

func TestDoJSON_RelativeWithoutBaseURL(t *testing.T) {
	c, _ := New(Options{})
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

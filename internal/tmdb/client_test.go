package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tssk/internal/services"
	"tssk/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestLookupStatusResolvesThroughFind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "key" {
			t.Errorf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/find/81189":
			if r.URL.Query().Get("external_source") != "tvdb_id" {
				t.Errorf("missing external_source, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"movie_results":[],"tv_results":[{"id":1396,"name":"Breaking Bad"}]}`))
		case "/tv/1396":
			_, _ = w.Write([]byte(`{"id":1396,"name":"Breaking Bad","status":"Ended"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL+"/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	status, err := client.LookupStatus(context.Background(), 81189)
	if err != nil {
		t.Fatalf("LookupStatus returned error: %v", err)
	}
	if status != "Ended" {
		t.Fatalf("unexpected status %q", status)
	}
}

func TestLookupStatusNoTVResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tv_results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.LookupStatus(context.Background(), 42)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLookupStatusRejectsMissingTVDB(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.LookupStatus(context.Background(), 0); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for zero tvdb id, got %v", err)
	}
}

func TestLookupStatusHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.LookupStatus(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
	if errors.Is(err, services.ErrNotFound) {
		t.Fatal("server errors must not look like a missing show")
	}
}

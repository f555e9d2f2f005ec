package sonarr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tssk/internal/services"
	"tssk/internal/sonarr"
)

func newClient(t *testing.T, url string, opts ...sonarr.Option) *sonarr.Client {
	t.Helper()
	opts = append([]sonarr.Option{sonarr.WithRetry(3, time.Millisecond)}, opts...)
	client, err := sonarr.New(url, "secret", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestDiscoverFallsBackToPrefixedRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/sonarr/api/v3/health" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	// Trailing path segments on the configured URL are ignored.
	client := newClient(t, srv.URL+"/some/path/")
	api, err := client.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if api != srv.URL+"/sonarr/api/v3" {
		t.Fatalf("unexpected api url %q", api)
	}
	if client.APIURL() != api {
		t.Fatalf("api url not remembered")
	}
}

func TestDiscoverFailureListsTriedURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.Discover(context.Background())
	if err == nil {
		t.Fatal("expected discovery error")
	}
	if !errors.Is(err, services.ErrConnectivity) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
	for _, want := range []string{srv.URL + "/api/v3", srv.URL + "/sonarr/api/v3"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestListSeriesAndEpisodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/health":
			_, _ = w.Write([]byte("[]"))
		case "/api/v3/series":
			_, _ = w.Write([]byte(`[
				{"id": 7, "title": "Andor", "status": "Continuing", "tvdbId": 393189,
				 "seasons": [{"seasonNumber": 1, "monitored": true}, {"seasonNumber": 2, "monitored": false}]}
			]`))
		case "/api/v3/episode":
			if r.URL.Query().Get("seriesId") != "7" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`[
				{"seriesId": 7, "seasonNumber": 2, "episodeNumber": 1, "airDateUtc": "2025-04-22T02:00:00Z", "hasFile": true, "monitored": false},
				{"seriesId": 7, "seasonNumber": 2, "episodeNumber": 2, "hasFile": false},
				{"seriesId": 7, "seasonNumber": 2, "episodeNumber": 3, "airDateUtc": "garbage"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	ctx := context.Background()

	series, err := client.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	got := series[0]
	if got.ID != 7 || got.TVDBID != 393189 || got.Title != "Andor" {
		t.Fatalf("unexpected series %+v", got)
	}
	if got.Status != "continuing" {
		t.Fatalf("status not normalized: %q", got.Status)
	}
	if !got.Monitored {
		t.Fatal("missing monitored flag should default to true")
	}
	if got.SeasonMonitored(2) {
		t.Fatal("season 2 should be unmonitored")
	}

	episodes, err := client.ListEpisodes(ctx, 7)
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(episodes))
	}
	first := episodes[0]
	want := time.Date(2025, 4, 22, 2, 0, 0, 0, time.UTC)
	if !first.AirDateUTC.Equal(want) || !first.HasFile || first.Monitored {
		t.Fatalf("unexpected first episode %+v", first)
	}
	if episodes[1].HasAirDate() || !episodes[1].Monitored {
		t.Fatalf("second episode should be undated and monitored: %+v", episodes[1])
	}
	if episodes[2].HasAirDate() {
		t.Fatal("unparsable air date should be dropped")
	}
}

func TestTransientFailuresAreRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v3/health" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	series, err := client.ListSeries(context.Background())
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(series) != 0 {
		t.Fatalf("expected empty list, got %d", len(series))
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v3/health" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.ListEpisodes(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrConnectivity) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := sonarr.New("http://localhost:8989", " "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty key, got %v", err)
	}
	if _, err := sonarr.New("localhost", "key"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for url without scheme, got %v", err)
	}
}

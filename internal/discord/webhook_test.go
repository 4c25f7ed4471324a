package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/monitor"
)

func TestWebhook_SendPostsJSONPayload(t *testing.T) {
	t.Parallel()

	var (
		mu             sync.Mutex
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		mu.Lock()
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, time.Second, zap.NewNop())
	n := Build(monitor.WatchRequest{Cinema: monitor.CinemaDelft, Date: "2026-09-01", Movie: "Dune"}, monitor.Listing{
		Title:     "Dune",
		DetailURL: "https://pathe.nl/film/dune",
		PosterURL: "https://cdn.pathe.nl/dune.jpg",
	})

	require.NoError(t, w.Send(context.Background(), n))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "application/json", gotContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	require.Contains(t, decoded["content"], "Pathé Delft")

	embeds, ok := decoded["embeds"].([]any)
	require.True(t, ok)
	require.Len(t, embeds, 1)
	embed, ok := embeds[0].(map[string]any)
	require.True(t, ok)
	// Discord expects the key present with a null value.
	require.Contains(t, embed, "description")
	require.Nil(t, embed["description"])
}

func TestWebhook_SendReportsNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, time.Second, zap.NewNop())
	err := w.Send(context.Background(), Notification{Content: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestWebhook_SendReportsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	w := NewWebhook(srv.URL, time.Second, zap.NewNop())
	err := w.Send(context.Background(), Notification{Content: "hi"})
	require.Error(t, err)
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeServer, token yenileme davranışını test etmek için minimal bir API taklidi.
//
// Geçerli access token "access-N" formatındadır; server yalnızca güncel
// N'yi kabul eder. Her refresh çağrısı N'yi artırır ve refresh token'ı
// DÖNDÜRÜR — tek kullanımlık rotation gerçek server'daki gibi uygulanır.
type fakeServer struct {
	mu             sync.Mutex
	generation     int
	currentRefresh string
	refreshCalls   atomic.Int64
	apiCalls       atomic.Int64
}

func newFakeServer() *fakeServer {
	return &fakeServer{generation: 1, currentRefresh: "refresh-1"}
}

func (f *fakeServer) currentAccess() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("access-%d", f.generation)
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		f.mu.Lock()
		defer f.mu.Unlock()
		if bearer != f.currentRefresh {
			writeEnvelope(w, http.StatusUnauthorized, nil, "unauthorized: invalid refresh token")
			return
		}

		// Rotation: eski refresh token ölür, yeni çift üretilir.
		f.generation++
		f.currentRefresh = fmt.Sprintf("refresh-%d", f.generation)
		writeEnvelope(w, http.StatusOK, TokenPair{
			AccessToken:  fmt.Sprintf("access-%d", f.generation),
			RefreshToken: f.currentRefresh,
		}, "")
	})

	mux.HandleFunc("GET /api/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls.Add(1)
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if bearer != f.currentAccess() {
			writeEnvelope(w, http.StatusUnauthorized, nil, "unauthorized: invalid token")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]int{"pending_bookings": 4}, "")
	})

	return mux
}

func writeEnvelope(w http.ResponseWriter, status int, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": errMsg == "",
		"data":    data,
		"error":   errMsg,
	})
}

func TestDoSuccess(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	c := New(ts.URL, WithTokens(TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}))

	var stats map[string]int
	err := c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, &stats)
	require.NoError(t, err)
	require.Equal(t, 4, stats["pending_bookings"])
	require.EqualValues(t, 0, server.refreshCalls.Load(), "valid token must not trigger a refresh")
}

// Süresi dolmuş access token: istek 401 alır, client refresh yapar ve
// isteği bir kez tekrarlar — caller hiçbir şey fark etmez.
func TestDoRefreshesOnUnauthorized(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	// access-0 hiçbir zaman geçerli olmadı — ilk istek 401 alacak.
	c := New(ts.URL, WithTokens(TokenPair{AccessToken: "access-0", RefreshToken: "refresh-1"}))

	var stats map[string]int
	err := c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, &stats)
	require.NoError(t, err)
	require.EqualValues(t, 1, server.refreshCalls.Load())
	require.EqualValues(t, 2, server.apiCalls.Load(), "original request must be retried exactly once")

	// Client yeni çifti saklamış olmalı.
	require.Equal(t, "access-2", c.Tokens().AccessToken)
	require.Equal(t, "refresh-2", c.Tokens().RefreshToken)
}

// Spec'in kalbi: N eşzamanlı istek 401 aldığında server'a TEK refresh
// çağrısı gitmeli. Refresh token tek kullanımlık olduğu için ikinci bir
// çağrı oturumu düşürürdü.
func TestConcurrentRequestsCoalesceRefresh(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	c := New(ts.URL, WithTokens(TokenPair{AccessToken: "access-0", RefreshToken: "refresh-1"}))

	const workers = 20
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			var stats map[string]int
			return c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, &stats)
		})
	}
	require.NoError(t, g.Wait())

	require.EqualValues(t, 1, server.refreshCalls.Load(),
		"concurrent 401s must share a single refresh flight")
}

// Refresh de başarısız olursa ikinci bir refresh denenmez ve token'lar
// temizlenir — caller login ekranına dönmeli.
func TestRefreshFailureClearsTokens(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	// Hem access hem refresh geçersiz.
	c := New(ts.URL, WithTokens(TokenPair{AccessToken: "access-0", RefreshToken: "refresh-0"}))

	var stats map[string]int
	err := c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, &stats)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.EqualValues(t, 1, server.refreshCalls.Load(), "failed refresh must not be retried")
	require.Empty(t, c.Tokens().RefreshToken, "dead tokens must be cleared")
}

// Recursion guard: refresh endpoint'inin kendisi 401 dönerse client
// İKİNCİ bir refresh başlatmamalı — sonsuz döngü riski.
func TestRefreshEndpointNotRetried(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	c := New(ts.URL, WithTokens(TokenPair{AccessToken: "access-0", RefreshToken: "refresh-0"}))

	err := c.Do(context.Background(), http.MethodPost, "/api/auth/refresh", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.EqualValues(t, 1, server.refreshCalls.Load())
}

func TestTokenCallback(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	var saved []TokenPair
	c := New(ts.URL,
		WithTokens(TokenPair{AccessToken: "access-0", RefreshToken: "refresh-1"}),
		WithTokenCallback(func(tp TokenPair) { saved = append(saved, tp) }),
	)

	var stats map[string]int
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, &stats))

	require.Len(t, saved, 1)
	require.Equal(t, "refresh-2", saved[0].RefreshToken)
}

func TestAPIErrorMessage(t *testing.T) {
	server := newFakeServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	c := New(ts.URL) // token yok

	err := c.Do(context.Background(), http.MethodGet, "/api/admin/stats", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Error(), "401")
}

func TestTransportErrorShape(t *testing.T) {
	// Kapatılmış server — istek hiçbir zaman bir HTTP yanıtı alamaz.
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c := New(ts.URL)

	err := c.Do(context.Background(), http.MethodGet, "/api/treatments", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 0, apiErr.Status)
	require.NotEmpty(t, apiErr.Message)
	require.Error(t, errors.Unwrap(apiErr))
}

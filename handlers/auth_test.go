package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seline/velora/database"
	"github.com/seline/velora/handlers"
	"github.com/seline/velora/middleware"
	"github.com/seline/velora/pkg/passhash"
	"github.com/seline/velora/pkg/ratelimit"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/services"
)

type noopMailer struct{}

func (noopMailer) SendPasswordReset(context.Context, string, string) error { return nil }
func (noopMailer) SendBookingConfirmation(context.Context, string, string, string, string) error {
	return nil
}
func (noopMailer) SendContactNotification(context.Context, string, string, string, string) error {
	return nil
}

// newAuthTestServer, gerçek service + SQLite üzerinde auth endpoint'lerini
// ayağa kaldırır. Limiter'lar test başına ayrı instance'tır — testler
// birbirinin penceresini kirletmez.
func newAuthTestServer(t *testing.T, loginLimiter, registerLimiter *ratelimit.Limiter) *httptest.Server {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adminRepo := repository.NewSQLiteAdminRepo(db.Conn)
	hasher := passhash.New(passhash.Params{
		Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})

	authService := services.NewAuthService(
		adminRepo,
		repository.NewSQLiteSessionRepo(db.Conn),
		repository.NewSQLiteResetTokenRepo(db.Conn),
		hasher,
		noopMailer{},
		"test-access-secret",
		"test-refresh-secret",
		15, 7,
	)

	h := handlers.NewAuthHandler(authService, loginLimiter, registerLimiter)
	authMW := middleware.NewAuthMiddleware(authService, adminRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Refresh)
	mux.Handle("POST /api/auth/logout", authMW.Require(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /api/auth/me", authMW.Require(http.HandlerFunc(h.Me)))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

type authResponse struct {
	Success bool `json:"success"`
	Data    struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Admin        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"admin"`
	} `json:"data"`
	Error string `json:"error"`
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) (*http.Response, authResponse) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func registerTestAdmin(t *testing.T, ts *httptest.Server) authResponse {
	t.Helper()
	resp, parsed := postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"email":    "owner@veloranails.com",
		"name":     "Seline",
		"password": "correct-horse-battery",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return parsed
}

func TestRegisterEndpoint(t *testing.T) {
	ts := newAuthTestServer(t, nil, nil)

	parsed := registerTestAdmin(t, ts)
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.Data.AccessToken)
	require.NotEmpty(t, parsed.Data.RefreshToken)

	// Duplicate → 409.
	resp, _ := postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"email":    "owner@veloranails.com",
		"name":     "Seline",
		"password": "correct-horse-battery",
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterRateLimit(t *testing.T) {
	ts := newAuthTestServer(t, nil, ratelimit.New(3, time.Hour))

	body := map[string]string{"email": "a@b.co", "name": "A", "password": "some-password-1"}
	for i := 0; i < 3; i++ {
		resp, _ := postJSON(t, ts.URL+"/api/auth/register", body, nil)
		require.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
	}

	resp, parsed := postJSON(t, ts.URL+"/api/auth/register", body, nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Contains(t, parsed.Error, "too many registration attempts")
}

func TestLoginRateLimit(t *testing.T) {
	ts := newAuthTestServer(t, ratelimit.New(5, 15*time.Minute), nil)
	registerTestAdmin(t, ts)

	bad := map[string]string{"email": "owner@veloranails.com", "password": "wrong-password-1"}
	for i := 0; i < 5; i++ {
		resp, _ := postJSON(t, ts.URL+"/api/auth/login", bad, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// 6. deneme — şifre doğru olsa bile 429.
	resp, _ := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"email": "owner@veloranails.com", "password": "correct-horse-battery",
	}, nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}

// Başarılı login sayaç sıfırlar — meşru kullanıcı tek yanlış denemeyle
// kilitlenmez.
func TestLoginResetsCounterOnSuccess(t *testing.T) {
	ts := newAuthTestServer(t, ratelimit.New(3, 15*time.Minute), nil)
	registerTestAdmin(t, ts)

	for round := 0; round < 3; round++ {
		resp, _ := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
			"email": "owner@veloranails.com", "password": "wrong-password-1",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = postJSON(t, ts.URL+"/api/auth/login", map[string]string{
			"email": "owner@veloranails.com", "password": "correct-horse-battery",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	ts := newAuthTestServer(t, nil, nil)
	first := registerTestAdmin(t, ts)

	// Header yoksa 401.
	resp, _ := postJSON(t, ts.URL+"/api/auth/refresh", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Refresh token Authorization header'ında taşınır.
	resp, second := postJSON(t, ts.URL+"/api/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + first.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEqual(t, first.Data.RefreshToken, second.Data.RefreshToken)

	// Rotation: eski token ikinci kez kullanılamaz.
	resp, _ = postJSON(t, ts.URL+"/api/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + first.Data.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutEndpoint(t *testing.T) {
	ts := newAuthTestServer(t, nil, nil)
	tokens := registerTestAdmin(t, ts)
	authHeader := map[string]string{"Authorization": "Bearer " + tokens.Data.AccessToken}

	resp, _ := postJSON(t, ts.URL+"/api/auth/logout", nil, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Access token doğal süresi dolana kadar geçerli kalır ama refresh öldü.
	resp, _ = postJSON(t, ts.URL+"/api/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + tokens.Data.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// İkinci logout da 200 (idempotent).
	resp, _ = postJSON(t, ts.URL+"/api/auth/logout", nil, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedEndpointRequiresToken(t *testing.T) {
	ts := newAuthTestServer(t, nil, nil)
	tokens := registerTestAdmin(t, ts)

	doMe := func(header string) int {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/me", nil)
		require.NoError(t, err)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusUnauthorized, doMe(""))
	require.Equal(t, http.StatusUnauthorized, doMe("Bearer garbage-token"))
	require.Equal(t, http.StatusUnauthorized, doMe("Basic "+tokens.Data.AccessToken))
	// Refresh token access endpoint'inde geçmez.
	require.Equal(t, http.StatusUnauthorized, doMe("Bearer "+tokens.Data.RefreshToken))
	require.Equal(t, http.StatusOK, doMe("Bearer "+tokens.Data.AccessToken))
}

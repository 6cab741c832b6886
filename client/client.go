// Package client, velora API'si için Go client sağlar.
//
// Temel problem: access token kısa ömürlüdür (15 dk). Süresi dolduğunda
// her istek 401 almaya başlar. Naif çözüm — her 401'de refresh çağırmak —
// eşzamanlı isteklerde felakettir: refresh token TEK KULLANIMLIKTIR
// (rotation), N isteğin aynı anda refresh denemesi N-1 tanesini geçersiz
// token'la bırakır ve oturum düşer.
//
// Bu yüzden refresh singleflight ile COALESCE edilir: aynı anda kaç istek
// 401 alırsa alsın, server'a TEK refresh çağrısı gider; diğerleri sonucu
// paylaşır. Refresh başarılıysa her istek yeni access token ile EN FAZLA
// BİR KEZ tekrarlanır — retry'ın retry'ı yoktur.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// refreshPath, token yenileme endpoint'i. Do() bu path'e giden istekler
// için refresh-retry mekanizmasını DEVRE DIŞI bırakır — aksi halde
// başarısız bir refresh yeni bir refresh tetikler ve sonsuz döngü oluşur.
const refreshPath = "/api/auth/refresh"

// APIError, server'ın döndürdüğü hata yanıtını taşır. Transport hataları
// da (istek server'a hiç ulaşamadı) aynı şekle sarılır — Status 0 olur
// ve altta yatan hata Unwrap ile erişilebilir kalır.
type APIError struct {
	Status  int    // HTTP status code, transport hatasında 0
	Message string // Server'ın error alanı
	err     error  // transport hatası, varsa
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// TokenPair, client'ın sakladığı access/refresh token çifti.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client, velora API'sine istek atan HTTP client.
// Tüm method'lar goroutine-safe'tir.
type Client struct {
	baseURL    string
	httpClient *http.Client

	store *tokenStore

	// refreshGroup, eşzamanlı 401'lerin refresh çağrısını tekilleştirir.
	refreshGroup singleflight.Group

	// onTokensChanged, her başarılı login/refresh sonrası çağrılır —
	// caller token'ları diske/keychain'e kalıcılaştırabilir. Opsiyonel.
	onTokensChanged func(TokenPair)
}

// Option, Client yapılandırma fonksiyonu.
type Option func(*Client)

// WithHTTPClient, özel bir http.Client kullanır (test, proxy, timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokens, client'ı kaydedilmiş bir token çiftiyle başlatır.
func WithTokens(tokens TokenPair) Option {
	return func(c *Client) { c.store.set(tokens) }
}

// WithTokenCallback, token'lar her değiştiğinde çağrılacak fonksiyonu ayarlar.
func WithTokenCallback(fn func(TokenPair)) Option {
	return func(c *Client) { c.onTokensChanged = fn }
}

// New, yeni bir API client oluşturur.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      &tokenStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens, mevcut token çiftini döner (kalıcılaştırma için).
func (c *Client) Tokens() TokenPair {
	return c.store.get()
}

// envelope, server'ın standart yanıt zarfı.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Do, API'ye authenticated bir istek gönderir.
//
// body nil değilse JSON'a çevrilir. out nil değilse başarılı yanıtın
// data alanı out'a unmarshal edilir.
//
// 401 alınırsa: refresh coalesce edilir, başarılıysa istek yeni access
// token ile TAM BİR kez tekrarlanır. İkinci 401 olduğu gibi döner —
// oturum gerçekten düşmüştür, caller login akışına yönlendirmelidir.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	usedAccess := c.store.get().AccessToken
	resp, raw, err := c.send(ctx, method, path, body, usedAccess)
	if err != nil {
		return transportError(err)
	}

	// Refresh endpoint'ine giden istekler retry edilmez (recursion guard).
	if resp.StatusCode == http.StatusUnauthorized && path != refreshPath {
		if refreshErr := c.refreshTokens(ctx, usedAccess); refreshErr != nil {
			return refreshErr
		}
		resp, raw, err = c.send(ctx, method, path, body, c.store.get().AccessToken)
		if err != nil {
			return transportError(err)
		}
	}

	return decodeResponse(resp.StatusCode, raw, out)
}

// Login, email/şifre ile oturum açar ve token'ları saklar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tokens TokenPair
	err := c.Do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &tokens)
	if err != nil {
		return err
	}
	c.setTokens(tokens)
	return nil
}

// Logout, server'daki oturumu sonlandırır ve lokal token'ları temizler.
// Server hatası lokal temizliği engellemez — token'lar her durumda silinir.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.setTokens(TokenPair{})
	return err
}

// refreshTokens, refresh token ile yeni bir token çifti alır.
//
// singleflight.Group.Do: aynı key ile eşzamanlı çağrılar tek uçuşta
// birleşir — ilk gelen gerçek HTTP isteğini yapar, diğerleri sonucu
// bekleyip paylaşır. Refresh token tek kullanımlık olduğu için bu
// zorunludur, optimizasyon değil.
//
// staleAccess: 401 alan isteğin kullandığı access token. Uçuş
// başladığında saklanan token bundan farklıysa başka bir uçuş yenilemeyi
// ÇOKTAN yapmış demektir — yeni refresh token'ı boşa yakmadan dönülür.
// Bu kontrol, ilk uçuş bittikten SONRA 401'i gelen geç kalmış istekleri
// yakalar; singleflight yalnızca çakışan çağrıları birleştirebilir.
func (c *Client) refreshTokens(ctx context.Context, staleAccess string) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		current := c.store.get()
		if current.AccessToken != staleAccess {
			return nil, nil
		}

		refreshToken := current.RefreshToken
		if refreshToken == "" {
			return nil, &APIError{Status: http.StatusUnauthorized, Message: "no refresh token"}
		}

		// Refresh isteği Authorization header'ında REFRESH token taşır,
		// access token değil.
		resp, raw, err := c.send(ctx, http.MethodPost, refreshPath, nil, refreshToken)
		if err != nil {
			return nil, transportError(err)
		}

		var tokens TokenPair
		if err := decodeResponse(resp.StatusCode, raw, &tokens); err != nil {
			// Refresh reddedildi — eski token'lar artık işe yaramaz.
			c.setTokens(TokenPair{})
			return nil, err
		}

		c.setTokens(tokens)
		return nil, nil
	})
	return err
}

// transportError, server'a ulaşamayan isteği APIError şekline sarar.
// Status 0: HTTP yanıtı yok. Altta yatan hata Unwrap ile erişilebilir —
// errors.Is(err, context.Canceled) gibi kontroller çalışmaya devam eder.
func transportError(err error) error {
	return &APIError{Status: 0, Message: err.Error(), err: err}
}

// send, tek bir HTTP isteği yapar ve ham yanıtı döner.
func (c *Client) send(ctx context.Context, method, path string, body any, bearer string) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, raw, nil
}

// setTokens, token çiftini saklar ve callback'i tetikler.
func (c *Client) setTokens(tokens TokenPair) {
	c.store.set(tokens)
	if c.onTokensChanged != nil {
		c.onTokensChanged(tokens)
	}
}

// decodeResponse, zarfı çözer: hata yanıtlarını APIError'a, başarılı
// yanıtların data alanını out'a çevirir.
func decodeResponse(status int, raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: status, Message: http.StatusText(status)}
	}

	if status < 200 || status >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Package ratelimit — IP bazlı rate limiting.
//
// Limiter: sliding window ile istek sayısı takibi. Login brute-force ve
// register enumeration koruması için kullanılır — her endpoint kendi
// Limiter instance'ını alır (login: 5/15dk, register: 3/saat).
//
// Neden in-memory?
// - SQLite'a her request'te yazmak gereksiz I/O + contention yaratır.
// - Tek instance deploy için Redis bağımlılığı eklemeye gerek yok.
// - sync.RWMutex ile thread-safe: RLock okuma, Lock yazma.
//
// Neden ayrı paket?
// handlers ↔ middleware arasında import cycle oluşmaması için rate
// limiter leaf dependency olarak konumlandırıldı — hiçbir proje içi
// pakete bağımlı değildir.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket, bir IP adresi için istek sayacı ve window başlangıç zamanı tutar.
//
// Sliding window algoritması:
// - İlk istek geldiğinde windowStart = now, count = 1.
// - Sonraki istekler: window süresi geçmemişse count++.
// - Süre geçmişse window sıfırlanır (yeni pencere başlar).
type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter, IP bazlı sliding-window rate limiter.
//
// Kullanım:
//
//	limiter := ratelimit.New(5, 15*time.Minute)
//	if !limiter.Allow(ip) { return 429 }
//	// Başarılı login'de:
//	limiter.Reset(ip)
type Limiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	stopCleanup chan struct{}
}

// New, yeni rate limiter oluşturur ve arka plan temizleme goroutine'ini başlatır.
//
// maxAttempts: Pencere başına izin verilen istek sayısı.
// window: Pencere süresi.
//
// Temizleme goroutine'i her dakika çalışır ve süresi dolmuş bucket'ları
// siler — uzun süre çalışan sunucularda bellek sızıntısını önler.
func New(maxAttempts int, window time.Duration) *Limiter {
	rl := &Limiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen IP adresinin isteğine izin verilip verilmediğini kontrol eder.
//
// true: İstek kabul edildi (limit aşılmadı).
// false: Rate limit aşıldı → caller 429 dönmeli.
//
// Her çağrı sayacı artırır (istek başarılı olsun veya olmasın).
// Başarılı login'de caller Reset() çağırmalıdır.
func (rl *Limiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Window süresi dolmuş mu?
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	return b.count <= rl.maxAttempts
}

// Reset, başarılı istek sonrası IP sayacını sıfırlar.
// Meşru kullanıcının sayacı temizlenmezse sonraki denemelerde bloke olabilir.
func (rl *Limiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, ip)
}

// RetryAfterSeconds, rate limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (rl *Limiter) RetryAfterSeconds(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[ip]
	if !exists {
		return 0
	}

	remaining := rl.window - time.Since(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama — client tam süreyi beklesin
}

// Close, arka plan temizleme goroutine'ini durdurur.
func (rl *Limiter) Close() {
	close(rl.stopCleanup)
}

// cleanupLoop, arka planda süresi dolmuş bucket'ları temizler.
func (rl *Limiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup, süresi dolmuş tüm bucket'ları siler.
func (rl *Limiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik sırası:
// 1. X-Forwarded-For header (reverse proxy arkasındaysa, ilk IP)
// 2. X-Real-IP header (nginx gibi proxy'ler ekler)
// 3. RemoteAddr (doğrudan bağlantı)
//
// Production'da uygulama genellikle nginx/Caddy arkasındadır — bu durumda
// RemoteAddr her zaman proxy'nin IP'sidir, gerçek client IP'si header'dadır.
func ExtractIP(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2 — ilk değer gerçek client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}

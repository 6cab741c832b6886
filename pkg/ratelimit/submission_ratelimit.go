// SubmissionLimiter — public form spam koruması (rezervasyon + iletişim formu).
//
// Limiter'dan farklar:
// - Cooldown: Window süresi ve ceza süresi ayrıdır. Limit aşıldığında
//   IP cooldown süresi kadar bekler. Limiter'da cooldown = kalan window süresi idi.
// - Reset yok: public form'da "başarılı istek" sayacı sıfırlamaz —
//   bot da geçerli form gönderebilir.
//
// Tasarım:
// - 10 dakikalık window içinde 3 gönderim → izin verilir.
// - 4. gönderimde cooldown başlar → 30 dakika boyunca tüm gönderimler reddedilir.
// - Cooldown bitince window sıfırlanır.
package ratelimit

import (
	"sync"
	"time"
)

// submissionBucket, bir IP için gönderim sayacı ve cooldown bilgisi tutar.
//
// İki durumlu:
// 1. Normal mod: count artırılır, windowStart bazlı pencere kontrolü.
// 2. Cooldown mod: cooldownUntil > now → tüm gönderimler reddedilir.
type submissionBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// SubmissionLimiter, IP bazlı public form rate limiter.
//
// maxSubmissions: Bir window içinde izin verilen maksimum gönderim sayısı.
// window: Sayaç pencere süresi (örn: 10 dakika).
// cooldown: Limit aşıldığında uygulanan ceza süresi (örn: 30 dakika).
type SubmissionLimiter struct {
	mu             sync.RWMutex
	buckets        map[string]*submissionBucket
	maxSubmissions int
	window         time.Duration
	cooldown       time.Duration
	stopCleanup    chan struct{}
}

// NewSubmissionLimiter, yeni form limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
func NewSubmissionLimiter(maxSubmissions int, window, cooldown time.Duration) *SubmissionLimiter {
	rl := &SubmissionLimiter{
		buckets:        make(map[string]*submissionBucket),
		maxSubmissions: maxSubmissions,
		window:         window,
		cooldown:       cooldown,
		stopCleanup:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen IP'nin form göndermesine izin verilip verilmediğini kontrol eder.
//
// Akış:
// 1. Cooldown'daysa → reject.
// 2. Window dolmuşsa → yeni pencere başlat.
// 3. Window içindeyse → count artır, max aşıldıysa cooldown başlat.
func (rl *SubmissionLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &submissionBucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown'da mıyız?
	if !b.cooldownUntil.IsZero() && now.Before(b.cooldownUntil) {
		return false
	}

	// Cooldown bitti — yeni pencere başlat
	if !b.cooldownUntil.IsZero() {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	// Window süresi dolmuş mu?
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxSubmissions {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// RetryAfterSeconds, cooldown'daki IP için kalan bekleme süresini döner.
func (rl *SubmissionLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[ip]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Close, arka plan temizleme goroutine'ini durdurur.
func (rl *SubmissionLimiter) Close() {
	close(rl.stopCleanup)
}

func (rl *SubmissionLimiter) cleanupLoop() {
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

// cleanup, hem window'u hem cooldown'u geçmiş bucket'ları siler.
func (rl *SubmissionLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		expired := now.Sub(b.windowStart) > rl.window &&
			(b.cooldownUntil.IsZero() || now.After(b.cooldownUntil))
		if expired {
			delete(rl.buckets, ip)
		}
	}
}

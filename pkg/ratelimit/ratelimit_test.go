package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterAllow(t *testing.T) {
	rl := New(3, time.Minute)
	defer rl.Close()

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"), "4th attempt within window must be blocked")

	// Farklı IP'ler birbirini etkilemez.
	require.True(t, rl.Allow("10.0.0.2"))
}

func TestLimiterWindowExpiry(t *testing.T) {
	rl := New(2, 50*time.Millisecond)
	defer rl.Close()

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(60 * time.Millisecond)
	require.True(t, rl.Allow("10.0.0.1"), "new window must reset the counter")
}

func TestLimiterReset(t *testing.T) {
	rl := New(2, time.Minute)
	defer rl.Close()

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	// Başarılı login sonrası sayaç temizlenir.
	rl.Reset("10.0.0.1")
	require.True(t, rl.Allow("10.0.0.1"))
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := New(1, time.Minute)
	defer rl.Close()

	require.Equal(t, 0, rl.RetryAfterSeconds("10.0.0.1"), "unknown IP has no wait")

	rl.Allow("10.0.0.1")
	retry := rl.RetryAfterSeconds("10.0.0.1")
	require.Greater(t, retry, 0)
	require.LessOrEqual(t, retry, 61)
}

func TestExtractIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.168.1.5:54321"
	require.Equal(t, "192.168.1.5", ExtractIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	require.Equal(t, "203.0.113.9", ExtractIP(r))

	// X-Forwarded-For her şeyi ezer; ilk değer gerçek client'tır.
	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	require.Equal(t, "198.51.100.7", ExtractIP(r))
}

func TestFormatRetryMessage(t *testing.T) {
	require.Equal(t, "45 second(s)", FormatRetryMessage(45))
	require.Equal(t, "2 minute(s)", FormatRetryMessage(120))
	require.Equal(t, "1 minute(s)", FormatRetryMessage(90))
}

func TestSubmissionLimiterCooldown(t *testing.T) {
	// 2 gönderim / dakika; kota aşılınca 50ms ceza.
	rl := NewSubmissionLimiter(2, time.Minute, 50*time.Millisecond)
	defer rl.Close()

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))

	// Kota aşıldı — cooldown başlar, sonraki denemeler de reddedilir.
	require.False(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	require.Greater(t, rl.RetryAfterSeconds("10.0.0.1"), 0)

	// Cooldown bitince pencere sıfırlanır.
	time.Sleep(60 * time.Millisecond)
	require.True(t, rl.Allow("10.0.0.1"))
	require.Equal(t, 0, rl.RetryAfterSeconds("10.0.0.1"))
}

func TestSubmissionLimiterSeparateIPs(t *testing.T) {
	rl := NewSubmissionLimiter(1, time.Minute, time.Minute)
	defer rl.Close()

	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.2"), "cooldown must not leak across IPs")
}

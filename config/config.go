// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Tüm ayarlar tek bir Config nesnesinde toplanır — her yerde ayrı ayrı
// os.Getenv() çağırmak yerine main.go'da bir kez yüklenir ve wire-up
// sırasında ihtiyaç duyan katmanlara geçirilir.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Upload   UploadConfig
	Security SecurityConfig
	CORS     CORSConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/velora.db)
}

// JWTConfig, access/refresh token ayarları.
//
// İki AYRI secret kullanılır: access token'ın sızması refresh token'ı
// tehlikeye atmaz (ve tersi). İkisi de zorunludur — eksikse Load() hata döner.
type JWTConfig struct {
	AccessSecret       string // Access token imzalama anahtarı — GİZLİ
	RefreshSecret      string // Refresh token imzalama anahtarı — GİZLİ, access'ten FARKLI
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 7)
}

// EmailConfig, Resend email servisi ayarları.
// ResendAPIKey boşsa email gönderimi devre dışı kalır (development kolaylığı).
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string // Gönderici adres (ör: noreply@veloranails.com)
	SalonEmail   string // İletişim formu bildirimlerinin gideceği salon adresi
	AppURL       string // Public site URL'i — reset linklerinde kullanılır
}

// UploadConfig, görsel yükleme ayarları.
type UploadConfig struct {
	Dir     string // Dosyaların kaydedileceği dizin
	MaxSize int64  // Byte cinsinden max dosya boyutu (varsayılan: 10MB)
}

// SecurityConfig, veri güvenliği ayarları.
type SecurityConfig struct {
	// EncryptionKey: rezervasyonlardaki müşteri telefonlarını DB'de
	// şifrelemek için AES-256 anahtarı (64 hex karakter). Zorunlu.
	EncryptionKey string
}

// CORSConfig, izin verilen origin listesi.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler — production'da bu dosya olmaz,
// gerçek env variable'lar kullanılır.
//
// Fail-fast: JWT secret'ları ve encryption key eksikse uygulama hiç
// başlamamalıdır — yarım konfigürasyonla çalışan bir auth katmanı
// sessizce güvensiz token üretir.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64) // 10MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	accessSecret := getEnv("JWT_ACCESS_SECRET", "")
	if accessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET environment variable is required")
	}

	refreshSecret := getEnv("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}

	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be different")
	}

	encryptionKey := getEnv("ENCRYPTION_KEY", "")
	if encryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY environment variable is required (64 hex chars)")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/velora.db"),
		},
		JWT: JWTConfig{
			AccessSecret:       accessSecret,
			RefreshSecret:      refreshSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", ""),
			SalonEmail:   getEnv("SALON_EMAIL", ""),
			AppURL:       getEnv("APP_URL", "http://localhost:5173"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./data/uploads"),
			MaxSize: maxSize,
		},
		Security: SecurityConfig{
			EncryptionKey: encryptionKey,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS",
				"http://localhost:5173,http://localhost:3000")),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitOrigins, virgülle ayrılmış origin listesini parse eder.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

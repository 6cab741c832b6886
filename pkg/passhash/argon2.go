// Package passhash — Argon2id şifre/token hash'leme.
//
// Neden bcrypt değil?
// - Argon2id memory-hard bir algoritmadır: GPU/ASIC ile brute-force
//   maliyetini bellek kullanımıyla da artırır.
// - bcrypt input'u 72 byte ile sınırlar — refresh token (JWT, yüzlerce
//   karakter) hash'lenemezdi. Argon2 için böyle bir sınır yok.
//
// Aynı hasher hem admin şifreleri hem DB'de saklanan refresh hash'i için
// kullanılır. Çıktı PHC string formatındadır:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt-b64>$<hash-b64>
//
// Parametreler hash'in içinde taşındığı için ileride güçlendirilirlerse
// eski hash'ler hâlâ doğrulanabilir.
package passhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params, Argon2id maliyet parametreleri.
type Params struct {
	Memory      uint32 // KiB cinsinden (ör: 65536 = 64MB)
	Time        uint32 // iterasyon sayısı
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams, production için önerilen parametreler (RFC 9106 low-memory profili).
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher, Argon2id hash + verify işlemlerini yapan struct.
// Oluşturulduktan sonra immutable'dır — goroutine-safe.
type Hasher struct {
	params Params
}

// New, verilen parametrelerle yeni bir Hasher oluşturur.
func New(params Params) *Hasher {
	return &Hasher{params: params}
}

// Hash, plaintext'i rastgele salt ile hash'ler ve PHC string döner.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(plaintext), salt,
		h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength,
	)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify, plaintext'in encoded PHC hash ile eşleşip eşleşmediğini kontrol eder.
//
// Parametreler encoded string'den okunur — Hasher'ın güncel parametreleri
// değil, hash üretilirkenki parametreler kullanılır.
// Karşılaştırma subtle.ConstantTimeCompare ile yapılır (timing attack koruması).
func (h *Hasher) Verify(plaintext, encoded string) (bool, error) {
	params, salt, key, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey(
		[]byte(plaintext), salt,
		params.Time, params.Memory, params.Parallelism, uint32(len(key)),
	)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// decodePHC, "$argon2id$v=19$m=...,t=...,p=...$salt$hash" formatını parse eder.
func decodePHC(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Params{}, nil, nil, fmt.Errorf("invalid argon2id hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid argon2id version: %w", err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("unsupported argon2 version: %d", version)
	}

	var params Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Time, &params.Parallelism); err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}

	return params, salt, key, nil
}

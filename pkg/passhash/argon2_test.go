package passhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test parametreleri kasıtlı düşük — production değerleri (64MB, t=3)
// test süitini gereksiz yavaşlatır, format ve doğrulama mantığı
// parametre büyüklüğünden bağımsızdır.
func lightHasher() *Hasher {
	return New(Params{
		Memory:      1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := lightHasher()

	encoded, err := h.Hash("s3cret-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("s3cret-password", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("wrong-password", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

// Aynı input iki kez hash'lenince farklı çıktı vermeli (rastgele salt).
func TestHashUnique(t *testing.T) {
	h := lightHasher()

	first, err := h.Hash("same-input")
	require.NoError(t, err)
	second, err := h.Hash("same-input")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

// bcrypt'in 72-byte sınırının aksine uzun inputlar (JWT refresh token'ları
// yüzlerce karakter) sorunsuz hash'lenmeli.
func TestHashLongInput(t *testing.T) {
	h := lightHasher()
	long := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 40)

	encoded, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Verify(long, encoded)
	require.NoError(t, err)
	require.True(t, ok)

	// Son karakteri değiştir — doğrulama düşmeli.
	ok, err = h.Verify(long[:len(long)-1]+"X", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

// Verify, parametreleri hash'in İÇİNDEN okur — farklı parametreli bir
// Hasher eski hash'leri hâlâ doğrulayabilmeli.
func TestVerifyCrossParams(t *testing.T) {
	old := lightHasher()
	encoded, err := old.Hash("password-123")
	require.NoError(t, err)

	stronger := New(Params{
		Memory:      2048,
		Time:        2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	})
	ok, err := stronger.Verify("password-123", encoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	h := lightHasher()

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=1024,t=1,p=1$only-four-parts",
		"$bcrypt$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
	} {
		_, err := h.Verify("password", bad)
		require.Error(t, err, "malformed hash %q must error", bad)
	}
}

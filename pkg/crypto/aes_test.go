package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHexKey = "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0"

func TestDeriveKey(t *testing.T) {
	key, err := DeriveKey(testHexKey)
	require.NoError(t, err)
	require.Len(t, key, 32)

	_, err = DeriveKey("not-hex-at-all")
	require.Error(t, err)

	_, err = DeriveKey("deadbeef") // 4 byte — çok kısa
	require.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	key, err := DeriveKey(testHexKey)
	require.NoError(t, err)

	encrypted, err := Encrypt("+90 532 123 45 67", key)
	require.NoError(t, err)
	require.NotContains(t, encrypted, "532", "ciphertext must not leak plaintext")

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	require.Equal(t, "+90 532 123 45 67", decrypted)
}

// Rastgele nonce: aynı plaintext + aynı key → farklı ciphertext.
func TestEncryptNonDeterministic(t *testing.T) {
	key, err := DeriveKey(testHexKey)
	require.NoError(t, err)

	first, err := Encrypt("same input", key)
	require.NoError(t, err)
	second, err := Encrypt("same input", key)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestDecryptWrongKey(t *testing.T) {
	key, err := DeriveKey(testHexKey)
	require.NoError(t, err)
	otherKey, err := DeriveKey(strings.Repeat("ab", 32))
	require.NoError(t, err)

	encrypted, err := Encrypt("secret", key)
	require.NoError(t, err)

	_, err = Decrypt(encrypted, otherKey)
	require.Error(t, err, "GCM authentication must fail with the wrong key")
}

func TestDecryptGarbage(t *testing.T) {
	key, err := DeriveKey(testHexKey)
	require.NoError(t, err)

	_, err = Decrypt("not base64 !!!", key)
	require.Error(t, err)

	_, err = Decrypt("c2hvcnQ", key) // geçerli base64 ama nonce'tan kısa
	require.Error(t, err)
}

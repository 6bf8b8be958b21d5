// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package pwcrypt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaporkit/vaporkit/internal/pwcrypt"
	"github.com/vaporkit/vaporkit/pkg/errutil"
)

// testKey generates a 1024-bit key, the size Steam issues for password
// encryption.
func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return key
}

func TestEncryptPassword_RoundTrip(t *testing.T) {
	key := testKey(t)
	modHex := fmt.Sprintf("%x", key.PublicKey.N)
	expHex := fmt.Sprintf("%x", key.PublicKey.E)

	encrypted, err := pwcrypt.EncryptPassword(modHex, expHex, "hunter2")
	require.NoError(t, err)

	// The wire form never carries the pad character itself.
	assert.False(t, strings.HasSuffix(encrypted, "="))

	// Re-appending a single "=" restores valid base64.
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted + "=")
	require.NoError(t, err)

	plaintext, err := rsa.DecryptPKCS1v15(nil, key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plaintext))
}

func TestEncryptPassword_UpperCaseHexKey(t *testing.T) {
	key := testKey(t)
	modHex := fmt.Sprintf("%X", key.PublicKey.N)
	expHex := fmt.Sprintf("%X", key.PublicKey.E)

	encrypted, err := pwcrypt.EncryptPassword(modHex, expHex, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, encrypted)
}

func TestEncryptPassword_InvalidKey(t *testing.T) {
	key := testKey(t)
	modHex := fmt.Sprintf("%x", key.PublicKey.N)

	tests := []struct {
		name     string
		modulus  string
		exponent string
	}{
		{"malformed modulus", "not hex", "10001"},
		{"empty modulus", "", "10001"},
		{"malformed exponent", modHex, "zz"},
		{"oversized exponent", modHex, strings.Repeat("ff", 16)},
		{"zero exponent", modHex, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pwcrypt.EncryptPassword(tt.modulus, tt.exponent, "hunter2")
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "AUTH_PUBLIC_KEY_INVALID")
		})
	}
}

func TestEncryptPassword_RandomPadding(t *testing.T) {
	// PKCS#1 v1.5 uses random padding; two encryptions of the same password
	// must still both decrypt correctly.
	key := testKey(t)
	modHex := fmt.Sprintf("%x", key.PublicKey.N)
	expHex := fmt.Sprintf("%x", key.PublicKey.E)

	first, err := pwcrypt.EncryptPassword(modHex, expHex, "hunter2")
	require.NoError(t, err)
	second, err := pwcrypt.EncryptPassword(modHex, expHex, "hunter2")
	require.NoError(t, err)

	for _, encrypted := range []string{first, second} {
		ciphertext, decodeErr := base64.StdEncoding.DecodeString(encrypted + "=")
		require.NoError(t, decodeErr)
		plaintext, decryptErr := rsa.DecryptPKCS1v15(nil, key, ciphertext)
		require.NoError(t, decryptErr)
		assert.Equal(t, "hunter2", string(plaintext))
	}
}

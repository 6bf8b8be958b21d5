// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package pwcrypt implements the password encryption convention expected by
// BeginAuthSessionViaCredentials: RSA with PKCS#1 v1.5 padding over the
// UTF-8 password, base64-encoded with a single trailing pad character
// removed.
package pwcrypt

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"strings"

	"github.com/samber/oops"
)

// maxExponentBits bounds the public exponent; Steam keys use 65537.
const maxExponentBits = 32

// EncryptPassword encrypts password under the hex-encoded RSA public key
// and returns the wire form the service expects.
//
// The service rejects the encoded ciphertext unless exactly one trailing
// "=" is stripped from the base64 output. Steam issues 1024-bit keys, whose
// 128-byte ciphertext always encodes with a single pad character; this is a
// service quirk, not a base64 convention.
func EncryptPassword(modulusHex, exponentHex, password string) (string, error) {
	modulus, ok := new(big.Int).SetString(modulusHex, 16)
	if !ok {
		return "", oops.Code("AUTH_PUBLIC_KEY_INVALID").
			With("field", "modulus").
			Errorf("public key modulus is not valid hex")
	}

	exponent, ok := new(big.Int).SetString(exponentHex, 16)
	if !ok {
		return "", oops.Code("AUTH_PUBLIC_KEY_INVALID").
			With("field", "exponent").
			Errorf("public key exponent is not valid hex")
	}
	if exponent.BitLen() > maxExponentBits || exponent.Sign() <= 0 {
		return "", oops.Code("AUTH_PUBLIC_KEY_INVALID").
			With("field", "exponent").
			Errorf("public key exponent out of range")
	}

	key := &rsa.PublicKey{N: modulus, E: int(exponent.Int64())}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, key, []byte(password))
	if err != nil {
		return "", oops.Code("AUTH_PUBLIC_KEY_INVALID").
			With("operation", "rsa encrypt").
			Wrap(err)
	}

	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	return strings.TrimSuffix(encoded, "="), nil
}

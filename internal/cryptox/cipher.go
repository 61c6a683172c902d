// Package cryptox contains the symmetric helpers used to keep admin-entered
// credentials out of plain sight in the local store, and the admin password
// check.
//
// The stream cipher here is an obfuscation layer, not a security boundary:
// the keystream is the raw password repeated, there is no key derivation,
// no nonce and no authentication tag. Anyone holding the ciphertext can
// tamper with it or brute-force short passwords. A wrong password does not
// produce an error; it produces garbage, and callers detect it when the
// result fails to parse.
package cryptox

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Marker prefixes every ciphertext produced by Encrypt.
const Marker = "ENC:"

var (
	ErrNotEncrypted        = errors.New("value is not encrypted")
	ErrMalformedCipherText = errors.New("malformed ciphertext")
)

// IsEncrypted reports whether s carries the ciphertext marker.
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, Marker)
}

// Encrypt XORs every byte of plaintext with the password byte at the same
// position modulo the password length, hex-encodes the result (two digits
// per byte) and prefixes it with Marker.
//
// An empty plaintext or an empty password is a no-op and the input is
// returned unchanged.
//
// Example:
//
//	c := Encrypt(`{"apiKey":"k"}`, "hunter2")
//	// c == "ENC:13..."
func Encrypt(plaintext, password string) string {
	if plaintext == "" || password == "" {
		return plaintext
	}
	return Marker + hex.EncodeToString(xorStream([]byte(plaintext), []byte(password)))
}

// Decrypt reverses Encrypt. A value without Marker yields ErrNotEncrypted and
// undecodable hex yields ErrMalformedCipherText. Decrypting with an empty
// password returns the input unchanged.
func Decrypt(cipherText, password string) (string, error) {
	if !IsEncrypted(cipherText) {
		return "", ErrNotEncrypted
	}
	if password == "" {
		return cipherText, nil
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(cipherText, Marker))
	if err != nil {
		return "", ErrMalformedCipherText
	}

	return string(xorStream(raw, []byte(password))), nil
}

func xorStream(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

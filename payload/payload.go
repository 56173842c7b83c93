// Copyright 2026 Contributors to the SSG API Client project.
// SPDX-License-Identifier: Apache-2.0

// Package payload handles the encrypted bodies some gateway APIs exchange.
// Such a body is the base64 encoding of AES-CBC ciphertext, PKCS#7 padded,
// under a key issued with the API subscription and the gateway's fixed
// initialisation vector.
package payload

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

// InitVector is the initialisation vector the gateway uses for every
// payload.
const InitVector = "SSGAPIInitVector"

// Cipher encrypts and decrypts payloads under one key.
type Cipher struct {
	block cipher.Block
}

// NewCipher returns a Cipher for the base64 encoded key. The decoded key must
// be 32 bytes (AES-256); 16 and 24 byte keys are accepted as well.
func NewCipher(key string) (*Cipher, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, err
	}

	return &Cipher{block: block}, nil
}

// Encrypt returns the base64 encoded ciphertext of plaintext.
func (o *Cipher) Encrypt(plaintext []byte) []byte {
	padded := pad(plaintext, aes.BlockSize)

	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(o.block, []byte(InitVector)).CryptBlocks(ct, padded)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(ct)))
	base64.StdEncoding.Encode(out, ct)

	return out
}

// Decrypt reverses Encrypt. Surrounding whitespace in data is ignored.
func (o *Cipher) Decrypt(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)

	ct := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(ct, data)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}
	ct = ct[:n]

	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(ct))
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(o.block, []byte(InitVector)).CryptBlocks(pt, ct)

	return unpad(pt, aes.BlockSize)
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("invalid padding")
	}

	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.New("invalid padding")
	}

	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, errors.New("invalid padding")
		}
	}

	return b[:len(b)-n], nil
}

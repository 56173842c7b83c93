package payload

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 32 bytes: "0123456789abcdef0123456789abcdef"
const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestCipher_round_trip(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	for _, pt := range []string{
		"",
		"x",
		"0123456789abcdef",
		`{"data":{"enrolment":{"referenceNumber":"ENR-2001-123414"}},"status":200}`,
	} {
		ct := c.Encrypt([]byte(pt))
		assert.NotEqual(t, pt, string(ct))

		got, err := c.Decrypt(ct)
		require.NoError(t, err, pt)
		assert.Equal(t, pt, string(got))
	}
}

func TestCipher_known_vectors(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	tvs := map[string]string{
		`{"status":200}`:   "vAqjv2Zq7KuvPMH1Bie2Kg==",
		"0123456789abcdef": "egUNQbpREdb5usG6XFvgInYf92+ooVhAfuqoaMoHviM=",
	}

	for pt, ct := range tvs {
		assert.Equal(t, ct, string(c.Encrypt([]byte(pt))))

		got, err := c.Decrypt([]byte("\n  " + ct + "\r\n"))
		require.NoError(t, err)
		assert.Equal(t, pt, string(got))
	}
}

func TestCipher_Decrypt_errors(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	_, err = c.Decrypt([]byte(`{"status":200}`))
	assert.ErrorContains(t, err, "decoding ciphertext")

	_, err = c.Decrypt([]byte(base64.StdEncoding.EncodeToString([]byte("short"))))
	assert.ErrorContains(t, err, "not a multiple of the block size")

	other, err := NewCipher(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32))))
	require.NoError(t, err)

	got, err := other.Decrypt(c.Encrypt([]byte("secret payload")))
	if err == nil {
		assert.NotEqual(t, "secret payload", string(got))
	}
}

func TestNewCipher_errors(t *testing.T) {
	_, err := NewCipher("not base64!")
	assert.ErrorContains(t, err, "decoding key")

	_, err = NewCipher(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.EqualError(t, err, "crypto/aes: invalid key size 5")
}

package cryptography

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePKCS8(t *testing.T, key *rsa.PrivateKey) []byte {
	keyBytes, err := x509.MarshalPKCS8PrivateKey(key)
	assert.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}

func TestParseRSAPrivateKey(t *testing.T) {
	{
		// Not PEM encoded
		_, err := ParseRSAPrivateKey([]byte("not a pem block"))
		assert.ErrorContains(t, err, "failed to decode PEM block")
	}
	{
		// PEM encoded, but not PKCS #8
		block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("garbage")})
		_, err := ParseRSAPrivateKey(block)
		assert.ErrorContains(t, err, "failed to parse private key")
	}
	{
		// Valid PKCS #8 key round trips
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		assert.NoError(t, err)

		parsedKey, err := ParseRSAPrivateKey(encodePKCS8(t, key))
		assert.NoError(t, err)
		assert.True(t, key.Equal(parsedKey))
	}
}

func TestLoadRSAKey(t *testing.T) {
	{
		// File does not exist
		_, err := LoadRSAKey(filepath.Join(t.TempDir(), "missing.pem"))
		assert.ErrorContains(t, err, "failed to read file")
	}
	{
		// Valid key file
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		assert.NoError(t, err)

		fp := filepath.Join(t.TempDir(), "key.pem")
		assert.NoError(t, os.WriteFile(fp, encodePKCS8(t, key), 0600))

		loadedKey, err := LoadRSAKey(fp)
		assert.NoError(t, err)
		assert.True(t, key.Equal(loadedKey))
	}
}

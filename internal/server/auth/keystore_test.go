package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
)

func writeECKeyPair(t *testing.T, dir string) (privPath, pubPath string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey: %v", err)
	}

	privDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("MarshalECPrivateKey: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	privPath = filepath.Join(dir, "jwt.pem")
	pubPath = filepath.Join(dir, "jwt.pub")
	writePEM(t, privPath, "EC PRIVATE KEY", privDER)
	writePEM(t, pubPath, "PUBLIC KEY", pubDER)
	return privPath, pubPath
}

func writeRSAKeyPair(t *testing.T, dir string) (privPath, pubPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	privPath = filepath.Join(dir, "jwt.pem")
	pubPath = filepath.Join(dir, "jwt.pub")
	writePEM(t, privPath, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key))
	writePEM(t, pubPath, "PUBLIC KEY", pubDER)
	return privPath, pubPath
}

func writePEM(t *testing.T, path, blockType string, der []byte) {
	t.Helper()
	b := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
}

func TestLoadKeyStore_SymmetricIsNoop(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{JWTAlgorithm: "HS256"}
	ks, err := LoadKeyStore(cfg)
	if err != nil {
		t.Fatalf("LoadKeyStore error: %v", err)
	}
	if ks.Len() != 0 {
		t.Fatalf("expected empty store, got %d keys", ks.Len())
	}
}

func TestLoadKeyStore_ES256(t *testing.T) {
	t.Parallel()

	priv, pub := writeECKeyPair(t, t.TempDir())
	cfg := &config.Config{
		JWTAlgorithm:   "ES256",
		PrivateKeyPath: priv,
		PublicKeyPath:  pub,
		KeyID:          "2026-01",
	}

	ks, err := LoadKeyStore(cfg)
	if err != nil {
		t.Fatalf("LoadKeyStore error: %v", err)
	}
	if ks.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", ks.Len())
	}
	if _, err := ks.SigningKey("2026-01"); err != nil {
		t.Fatalf("SigningKey error: %v", err)
	}
	if _, err := ks.VerificationKey("2026-01"); err != nil {
		t.Fatalf("VerificationKey error: %v", err)
	}
	// empty kid resolves to the sole loaded key
	if _, err := ks.VerificationKey(""); err != nil {
		t.Fatalf("VerificationKey with empty kid: %v", err)
	}
	// unknown kid must not fall back to another key
	if _, err := ks.VerificationKey("2025-12"); err == nil {
		t.Fatal("expected error for unknown kid")
	}
}

func TestLoadKeyStore_RS256(t *testing.T) {
	t.Parallel()

	priv, pub := writeRSAKeyPair(t, t.TempDir())
	cfg := &config.Config{
		JWTAlgorithm:   "RS256",
		PrivateKeyPath: priv,
		PublicKeyPath:  pub,
	}

	ks, err := LoadKeyStore(cfg)
	if err != nil {
		t.Fatalf("LoadKeyStore error: %v", err)
	}
	// KeyID unset defaults to "default"
	if _, err := ks.SigningKey("default"); err != nil {
		t.Fatalf("SigningKey error: %v", err)
	}
}

func TestLoadKeyStore_MissingFiles(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		JWTAlgorithm:   "ES256",
		PrivateKeyPath: "/nonexistent/jwt.pem",
		PublicKeyPath:  "/nonexistent/jwt.pub",
	}

	_, err := LoadKeyStore(cfg)
	if !errors.Is(err, common.ErrorConfiguration) {
		t.Fatalf("want ErrorConfiguration, got %v", err)
	}
}

func TestKeyStore_EmptyResolution(t *testing.T) {
	t.Parallel()

	ks := NewKeyStore()
	if _, err := ks.SigningKey(""); err == nil {
		t.Fatal("expected error resolving a key from an empty store")
	}
	if _, err := ks.VerificationKey("any"); err == nil {
		t.Fatal("expected error resolving a key from an empty store")
	}
}

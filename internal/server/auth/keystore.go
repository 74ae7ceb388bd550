package auth

import (
	"crypto"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
)

type keyPair struct {
	private crypto.PrivateKey
	public  crypto.PublicKey
}

// KeyStore holds signing/verification key pairs keyed by key id. The map is
// built once at load time and never mutated afterwards, so reads on the
// request path need no locking.
type KeyStore struct {
	keys map[string]keyPair
}

// NewKeyStore returns an empty store. Symmetric deployments use this: the
// shared secret lives in config, not in the store.
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: map[string]keyPair{}}
}

// LoadKeyStore reads PEM key material from the configured paths and stores
// the pair under the configured key id. For HS256 it is a no-op returning an
// empty store. The caller decides whether a load failure is fatal
// (production) or leaves the server degraded (development).
func LoadKeyStore(cfg *config.Config) (*KeyStore, error) {
	if cfg.JWTAlgorithm == "HS256" {
		return NewKeyStore(), nil
	}

	kid := cfg.KeyID
	if kid == "" {
		kid = "default"
	}

	privPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return NewKeyStore(), fmt.Errorf("%w: reading private key: %v", common.ErrorConfiguration, err)
	}
	pubPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return NewKeyStore(), fmt.Errorf("%w: reading public key: %v", common.ErrorConfiguration, err)
	}

	var private crypto.PrivateKey
	var public crypto.PublicKey

	switch cfg.JWTAlgorithm {
	case "RS256":
		private, err = jwt.ParseRSAPrivateKeyFromPEM(privPEM)
		if err == nil {
			public, err = jwt.ParseRSAPublicKeyFromPEM(pubPEM)
		}
	case "ES256":
		private, err = jwt.ParseECPrivateKeyFromPEM(privPEM)
		if err == nil {
			public, err = jwt.ParseECPublicKeyFromPEM(pubPEM)
		}
	default:
		return NewKeyStore(), fmt.Errorf("%w: unsupported algorithm %q", common.ErrorConfiguration, cfg.JWTAlgorithm)
	}
	if err != nil {
		return NewKeyStore(), fmt.Errorf("%w: parsing key material: %v", common.ErrorConfiguration, err)
	}

	return &KeyStore{keys: map[string]keyPair{kid: {private: private, public: public}}}, nil
}

// Len returns the number of loaded key pairs.
func (s *KeyStore) Len() int {
	return len(s.keys)
}

// SigningKey resolves the private key for the given key id, or the sole
// loaded key when kid is empty.
func (s *KeyStore) SigningKey(kid string) (crypto.PrivateKey, error) {
	p, err := s.resolve(kid)
	if err != nil {
		return nil, err
	}
	return p.private, nil
}

// VerificationKey resolves the public key for a token's kid header. An exact
// match is required when a kid is present; with no kid the sole loaded key is
// used, and anything else fails.
func (s *KeyStore) VerificationKey(kid string) (crypto.PublicKey, error) {
	p, err := s.resolve(kid)
	if err != nil {
		return nil, err
	}
	return p.public, nil
}

func (s *KeyStore) resolve(kid string) (keyPair, error) {
	if kid != "" {
		p, ok := s.keys[kid]
		if !ok {
			return keyPair{}, fmt.Errorf("unknown key id %q", kid)
		}
		return p, nil
	}
	if len(s.keys) == 1 {
		for _, p := range s.keys {
			return p, nil
		}
	}
	return keyPair{}, fmt.Errorf("no key id given and %d keys loaded", len(s.keys))
}

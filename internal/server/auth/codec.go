package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
)

// Claims is the claim set carried by ClipForge access tokens. Only the
// registered claims are used; the subject holds the user id in string form.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec encodes and decodes signed access tokens. Exactly one signing
// algorithm is active per deployment; the kid header still allows several
// keys under that one algorithm.
type TokenCodec struct {
	method   jwt.SigningMethod
	secret   []byte
	keys     *KeyStore
	keyID    string
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration

	now func() time.Time
}

// NewTokenCodec builds a codec from config and the loaded key store.
// Unsupported algorithms are a configuration error.
func NewTokenCodec(cfg *config.Config, keys *KeyStore) (*TokenCodec, error) {
	switch cfg.JWTAlgorithm {
	case "HS256", "RS256", "ES256":
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", common.ErrorConfiguration, cfg.JWTAlgorithm)
	}

	return &TokenCodec{
		method:   jwt.GetSigningMethod(cfg.JWTAlgorithm),
		secret:   []byte(cfg.SecretKey),
		keys:     keys,
		keyID:    cfg.KeyID,
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.AccessTokenValidityDuration,
		leeway:   cfg.JWTLeeway,
		now:      time.Now,
	}, nil
}

func (c *TokenCodec) symmetric() bool {
	return c.method.Alg() == "HS256"
}

// Encode mints a token for subject with the configured TTL.
func (c *TokenCodec) Encode(subject string) (string, error) {
	return c.EncodeWithTTL(subject, c.ttl)
}

// EncodeWithTTL mints a token with an explicit validity duration, injecting
// exp, iat, issuer and audience.
func (c *TokenCodec) EncodeWithTTL(subject string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
		},
	}

	token := jwt.NewWithClaims(c.method, claims)

	if c.symmetric() {
		return token.SignedString(c.secret)
	}

	key, err := c.keys.SigningKey(c.keyID)
	if err != nil {
		return "", fmt.Errorf("resolving signing key: %w", err)
	}
	if c.keyID != "" {
		token.Header["kid"] = c.keyID
	}
	return token.SignedString(key)
}

// Decode verifies the token and returns its claims. Failures collapse into
// two outcomes: common.ErrTokenExpired when the signature verified and only
// the expiry check failed, common.ErrInvalidToken for everything else.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if c.symmetric() {
			return c.secret, nil
		}
		kid, _ := t.Header["kid"].(string)
		return c.keys.VerificationKey(kid)
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/clipforge/clipforge/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-env string production|development
//	-alg string JWT algorithm (HS256|RS256|ES256)
//	-s string   JWT HMAC secret key (HS256)
//	-priv/-pub  PEM key paths (RS256/ES256)
//	-kid string key id for the loaded key pair
//	-t int      access token validity, minutes
//	-l int      JWT leeway, seconds
//	-iss/-aud   issuer and audience claim values
//	-st string  storage type (local|s3)
//	-u string   local upload directory
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-env", "-alg", "-s", "-priv", "-pub", "-kid",
		"-t", "-l", "-iss", "-aud", "-st", "-u",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Environment, "env", config.Environment, "environment (production|development)")
	fs.StringVar(&config.JWTAlgorithm, "alg", config.JWTAlgorithm, "JWT signing algorithm")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key (HS256)")
	fs.StringVar(&config.PrivateKeyPath, "priv", config.PrivateKeyPath, "private key PEM path")
	fs.StringVar(&config.PublicKeyPath, "pub", config.PublicKeyPath, "public key PEM path")
	fs.StringVar(&config.KeyID, "kid", config.KeyID, "signing key id")

	accessTokenValidityMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	leewaySeconds := fs.Int("l", int(config.JWTLeeway.Seconds()), "JWT leeway (in seconds)")

	fs.StringVar(&config.JWTIssuer, "iss", config.JWTIssuer, "JWT issuer")
	fs.StringVar(&config.JWTAudience, "aud", config.JWTAudience, "JWT audience")
	fs.StringVar(&config.StorageType, "st", config.StorageType, "storage type (local|s3)")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "local upload directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityMinutes) * time.Minute
	config.JWTLeeway = time.Duration(*leewaySeconds) * time.Second
}

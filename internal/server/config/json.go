package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/clipforge/clipforge/internal/flagx"
	"github.com/clipforge/clipforge/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. It uses
// timex.Duration for interval fields so both "30s" strings and integer
// nanoseconds parse. After unmarshalling, the fields are copied into the
// runtime Config.
type JsonConfig struct {
	Environment      string `json:"environment"`
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`

	JWTAlgorithm                string         `json:"jwt_algorithm"`
	SecretKey                   string         `json:"secret_key"`
	PrivateKeyPath              string         `json:"private_key_path"`
	PublicKeyPath               string         `json:"public_key_path"`
	KeyID                       string         `json:"key_id"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	JWTLeeway                   timex.Duration `json:"jwt_leeway"`
	JWTIssuer                   string         `json:"jwt_issuer"`
	JWTAudience                 string         `json:"jwt_audience"`

	BcryptCost        int            `json:"bcrypt_cost"`
	LastLoginDebounce timex.Duration `json:"last_login_debounce"`

	StorageType     string `json:"storage_type"`
	UploadDir       string `json:"upload_dir"`
	MaxUploadSizeMB int64  `json:"max_upload_size_mb"`
	S3RootUser      string `json:"s3_root_user"`
	S3RootPassword  string `json:"s3_root_password"`
	S3Bucket        string `json:"s3_bucket"`
	S3Region        string `json:"s3_region"`
	S3BaseEndpoint  string `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file pointed at by the
// -c/-config flags. If no file is given, nothing is loaded. Empty JSON values
// keep the defaults already present in config. Unreadable or invalid files
// panic: a half-applied config file should never start a server.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	setIfNotEmpty(&config.Environment, c.Environment)
	setIfNotEmpty(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.JWTAlgorithm, c.JWTAlgorithm)
	setIfNotEmpty(&config.SecretKey, c.SecretKey)
	setIfNotEmpty(&config.PrivateKeyPath, c.PrivateKeyPath)
	setIfNotEmpty(&config.PublicKeyPath, c.PublicKeyPath)
	setIfNotEmpty(&config.KeyID, c.KeyID)
	setIfNotEmpty(&config.JWTIssuer, c.JWTIssuer)
	setIfNotEmpty(&config.JWTAudience, c.JWTAudience)
	setIfNotEmpty(&config.StorageType, c.StorageType)
	setIfNotEmpty(&config.UploadDir, c.UploadDir)
	setIfNotEmpty(&config.S3RootUser, c.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, c.S3RootPassword)
	setIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	setIfNotEmpty(&config.S3Region, c.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.JWTLeeway.Duration != 0 {
		config.JWTLeeway = time.Duration(c.JWTLeeway.Duration)
	}
	if c.LastLoginDebounce.Duration != 0 {
		config.LastLoginDebounce = time.Duration(c.LastLoginDebounce.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.MaxUploadSizeMB != 0 {
		config.MaxUploadSizeMB = c.MaxUploadSizeMB
	}
}

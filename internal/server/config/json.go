package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/employeehub/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Duration fields
// accept both "2h" style strings and integer nanoseconds. Pointer fields
// distinguish "absent" from an explicit zero value.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	S3PublicBaseURL             string          `json:"s3_public_base_url"`
	PhotoFolder                 string          `json:"photo_folder"`
	BodyLimit                   string          `json:"body_limit"`
	RateLimit                   *float64        `json:"rate_limit"`
	RequireAuth                 *bool           `json:"require_auth"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c / -config.
// Missing keys keep their current values. An unreadable file or invalid JSON
// panics: the process cannot start with a half-applied configuration.
func parseJson(config *Config) {
	path := configFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.PhotoFolder, c.PhotoFolder)
	setString(&config.BodyLimit, c.BodyLimit)
	if c.RateLimit != nil {
		config.RateLimit = *c.RateLimit
	}
	if c.RequireAuth != nil {
		config.RequireAuth = *c.RequireAuth
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

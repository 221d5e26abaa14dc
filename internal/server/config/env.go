package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays values from environment variables. Unset or empty
// variables leave the current value alone; malformed numbers and booleans
// are ignored the same way.
//
//	PORT / HTTP_ADDRESS        listen port or full address
//	DATABASE_DSN / DATABASE_URL
//	JWT_SECRET
//	TOKEN_TTL                  Go duration, e.g. "2h"
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PUBLIC_URL
//	PHOTO_FOLDER, BODY_LIMIT, RATE_LIMIT, REQUIRE_AUTH, LOG_LEVEL
func parseEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	setString(&config.EndpointAddrHTTP, os.Getenv("HTTP_ADDRESS"))

	setString(&config.DatabaseDSN, os.Getenv("DATABASE_URL"))
	setString(&config.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setString(&config.SecretKey, os.Getenv("JWT_SECRET"))

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}

	setString(&config.S3RootUser, os.Getenv("S3_ACCESS_KEY"))
	setString(&config.S3RootPassword, os.Getenv("S3_SECRET_KEY"))
	setString(&config.S3Bucket, os.Getenv("S3_BUCKET"))
	setString(&config.S3Region, os.Getenv("S3_REGION"))
	setString(&config.S3BaseEndpoint, os.Getenv("S3_ENDPOINT"))
	setString(&config.S3PublicBaseURL, os.Getenv("S3_PUBLIC_URL"))
	setString(&config.PhotoFolder, os.Getenv("PHOTO_FOLDER"))
	setString(&config.BodyLimit, os.Getenv("BODY_LIMIT"))

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.RateLimit = f
		}
	}
	if v := os.Getenv("REQUIRE_AUTH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.RequireAuth = b
		}
	}

	setString(&config.LogLevel, os.Getenv("LOG_LEVEL"))
}

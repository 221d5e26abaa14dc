package graphql

import (
	"time"

	"github.com/dmitrijs2005/employeehub/internal/server/config"
)

func newTestConfig() *config.Config {
	return &config.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour}
}

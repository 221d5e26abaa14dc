// Package auth hashes passwords and issues and verifies bearer tokens.
package auth

import (
	"time"

	"github.com/dmitrijs2005/employeehub/internal/server/config"
)

// Credentials is the credential service used by the account flows and the
// HTTP token gate. It holds the signing secret and token lifetime.
type Credentials struct {
	secret   []byte
	validity time.Duration
}

func NewCredentials(cfg *config.Config) *Credentials {
	return &Credentials{
		secret:   []byte(cfg.SecretKey),
		validity: cfg.AccessTokenValidityDuration,
	}
}

func (c *Credentials) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (c *Credentials) VerifyPassword(password, hash string) bool {
	return VerifyPassword(password, hash)
}

func (c *Credentials) IssueToken(userID, userName string) (string, error) {
	return GenerateToken(userID, userName, c.secret, c.validity)
}

func (c *Credentials) ParseToken(token string) (*Claims, error) {
	return ParseToken(token, c.secret)
}

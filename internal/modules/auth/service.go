package auth

import (
	"crypto/subtle"

	"github.com/lightsmap/core/internal/pkg/jwt"
)

type Service struct {
	password string
	signer   *jwt.Signer
}

func NewService(adminPassword string, signer *jwt.Signer) *Service {
	return &Service{password: adminPassword, signer: signer}
}

// Login exchanges the admin password for a 24h admin token. A missing
// server-side password is reported before the request is looked at.
func (s *Service) Login(password string) (string, error) {
	if s.password == "" {
		return "", errNotConfigured
	}
	if password == "" {
		return "", errPasswordRequired
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", errInvalidCredentials
	}
	return s.signer.IssueAdmin()
}

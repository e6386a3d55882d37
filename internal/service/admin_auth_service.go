package service

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AdminAuthService authenticates the single configured admin account. The
// credentials come from the environment (email + bcrypt hash); there is no
// admin user table.
type AdminAuthService struct {
	email        string
	passwordHash string
}

// NewAdminAuthService constructs an AdminAuthService. With empty credentials
// the admin surface is disabled and every login fails.
func NewAdminAuthService(email, passwordHash string) *AdminAuthService {
	return &AdminAuthService{email: email, passwordHash: passwordHash}
}

// Enabled reports whether admin credentials are configured.
func (s *AdminAuthService) Enabled() bool {
	return s.email != "" && s.passwordHash != ""
}

// Login verifies the credentials and issues a JWT.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	if !s.Enabled() {
		log.Warn().Msg("Admin login attempted but admin credentials are not configured")
		return "", utils.ErrAdminDisabled
	}
	if email != s.email {
		log.Warn().Str("email", email).Msg("Admin login failed: unknown email")
		return "", utils.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Admin login failed: password verification failed")
		return "", utils.ErrInvalidCredential
	}

	log.Info().Str("email", email).Msg("Admin login successful")
	return utils.GenerateJWT(email)
}

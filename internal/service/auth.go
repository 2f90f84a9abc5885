package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/wtwr-backend/internal/config"
	"github.com/deppfellow/wtwr-backend/internal/server"
)

// AuthService prepares the identity provider selected by auth.mode.
// Only the clerk mode needs process-wide setup: the SDK reads its secret
// key from a package-level setting.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Mode == config.AuthModeClerk {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}

	s.Logger.Info().Str("auth_mode", s.Config.Auth.Mode).Msg("identity provider configured")

	return &AuthService{
		server: s,
	}
}

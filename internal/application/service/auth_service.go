package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService unlocks the app with the shop's shared passphrase. There are
// no user accounts; each successful login starts a session.
type AuthService struct {
	passphraseHash string
	jwtManager     *utils.JWTManager

	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time // session id -> token expiry
}

// NewAuthService creates a new auth service. A configured bcrypt hash is
// used as is; a plain passphrase is hashed once at startup.
func NewAuthService(cfg config.AuthConfig, jwtManager *utils.JWTManager) (*AuthService, error) {
	hash := cfg.PassphraseHash
	if hash == "" {
		if cfg.Passphrase == "" {
			return nil, errors.New("auth: AUTH_PASSPHRASE or AUTH_PASSPHRASE_HASH must be set")
		}
		var err error
		if hash, err = utils.HashPassword(cfg.Passphrase); err != nil {
			return nil, err
		}
	}
	return &AuthService{
		passphraseHash: hash,
		jwtManager:     jwtManager,
		revoked:        make(map[uuid.UUID]time.Time),
	}, nil
}

// LoginOutput represents the login output
type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the passphrase and issues a session token
func (s *AuthService) Login(_ context.Context, passphrase string) (*LoginOutput, error) {
	if passphrase == "" || !utils.CheckPasswordHash(passphrase, s.passphraseHash) {
		return nil, apperror.ErrInvalidCredentials
	}
	token, expiresAt, err := s.jwtManager.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken returns the session behind a token
func (s *AuthService) ValidateToken(token string) (*utils.SessionClaims, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.SessionID]
	s.mu.Unlock()
	if revoked {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

// Logout ends a session. Revocations are kept in memory until the token
// would have expired anyway.
func (s *AuthService) Logout(claims *utils.SessionClaims) {
	if claims == nil {
		return
	}
	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for sid, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, sid)
		}
	}
	s.revoked[claims.SessionID] = expiresAt
}

package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
)

// AdminCredentials is the single principal allowed to manage projects.
// When PasswordHash is set it is a bcrypt hash and Password is ignored.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// AuthService is the session authority: it issues, verifies and ends admin sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, claims *auth.Claims, err error)
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	admin      AdminCredentials
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new session authority. A nil tokenStore disables
// revocation: logout then only clears the client's cookie and a replayed
// token stays valid until it expires.
func NewAuthService(admin AdminCredentials, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		admin:      admin,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login checks the pair against the administrator and issues a session token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *auth.Claims, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	if !s.passwordMatches(password) || !emailOK {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.jwtService.Issue(email)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, claims, nil
}

func (s *authService) passwordMatches(password string) bool {
	if s.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
}

// Authorize verifies a session token and returns the embedded identity.
func (s *authService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperrors.ErrMissingSession
	}

	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSession, err)
	}
	if claims.Email != s.admin.Email {
		return nil, fmt.Errorf("%w: unknown principal", apperrors.ErrInvalidSession)
	}

	if s.tokenStore != nil {
		revoked, err := s.tokenStore.IsSessionRevoked(ctx, claims.ID)
		if err != nil {
			log.Printf("revocation lookup for session %s: %v", claims.ID, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: session revoked", apperrors.ErrInvalidSession)
		}
	}
	return claims, nil
}

// Logout ends the session server-side when revocation is enabled. An
// unparsable or expired token has nothing left to revoke.
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.tokenStore == nil || token == "" {
		return nil
	}

	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.tokenStore.RevokeSession(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
		return fmt.Errorf("revoke session %s: %w", claims.ID, err)
	}
	return nil
}

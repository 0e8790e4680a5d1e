// Package auth provides credential login, JWT issuance, and token
// revocation-backed logout.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lottohq/lottery/pkg/domain"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/repository"
	"github.com/lottohq/lottery/pkg/utils"
)

// RevocationStore records revoked tokens until their natural expiry.
// Implemented by infra/cache on Redis.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Service issues and revokes JWTs against the user store.
type Service struct {
	uow        repository.UnitOfWork
	revocation RevocationStore
	secret     []byte
	expiry     time.Duration
	logger     *slog.Logger
}

// New creates an auth Service.
func New(
	uow repository.UnitOfWork,
	revocation RevocationStore,
	secret string,
	expiry time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:        uow,
		revocation: revocation,
		secret:     []byte(secret),
		expiry:     expiry,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed token plus the
// authenticated user. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (token string, u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return "", nil, err
	}
	if u == nil || !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Warn("Login rejected")
		return "", nil, domain.ErrUnauthorized
	}

	token, err = s.generateToken(u.ID, u.Role)
	if err != nil {
		log.Error("token signing failed", "error", err)
		return "", nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return token, u, nil
}

// Logout revokes the token for the remainder of its lifetime. Expired or
// malformed tokens are treated as already logged out.
func (s *Service) Logout(ctx context.Context, token string) error {
	log := s.logger.With("context", "Logout")
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		log.Warn("Logout of invalid token", "error", err)
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := time.Until(exp.Time)
	if err := s.revocation.Revoke(ctx, token, ttl); err != nil {
		log.Error("Logout failed", "error", err)
		return err
	}
	log.Info("Logout successful")
	return nil
}

// IsRevoked reports whether the token was logged out. Used by the HTTP
// middleware after signature verification.
func (s *Service) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revocation.IsRevoked(ctx, token)
}

func (s *Service) generateToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

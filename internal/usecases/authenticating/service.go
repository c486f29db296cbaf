package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator gerencia a sessão do operador da agência. O sistema tem um
// único operador: a senha é comparada com o hash bcrypt configurado no ambiente
type Authenticator interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*domain.AdminClaims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
	}
}

// Login valida a senha do operador e emite um token JWT de sessão
func (s *Service) Login(password string) (string, error) {
	if password == "" {
		return "", ErrMissingPassword
	}

	if s.cfg.Auth.AdminPasswordHash == "" {
		logrus.Error("ADMIN_PASSWORD_HASH não configurado - login de operador indisponível")
		return "", ErrNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateJWT()
}

func (s *Service) generateJWT() (string, error) {
	ttl := time.Duration(s.cfg.Auth.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	claims := domain.AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

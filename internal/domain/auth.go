package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims é o payload do token de sessão do operador da agência
type AdminClaims struct {
	Role string
	jwt.RegisteredClaims
}

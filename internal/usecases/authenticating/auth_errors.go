package authenticating

import (
	"errors"
)

// Erros de autenticação do operador
var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")
	ErrMissingPassword    = errors.New("senha é obrigatória")
	ErrNotConfigured      = errors.New("autenticação de administrador não configurada")
)

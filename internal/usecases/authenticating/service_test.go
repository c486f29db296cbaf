package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig(t *testing.T, password string) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &config.Config{
		Auth: config.Auth{
			AdminPasswordHash: string(hash),
			JWTSecret:         "test-secret",
			SessionTTLHours:   1,
		},
	}
}

func TestLogin(t *testing.T) {
	cfg := newTestConfig(t, "senha-correta")
	service := NewService(cfg)

	tests := []struct {
		name     string
		password string
		service  Authenticator
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Senha correta - emite token de sessão",
			password: "senha-correta",
			service:  service,
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Senha incorreta - credenciais inválidas",
			password: "senha-errada",
			service:  service,
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Senha vazia - erro de validação",
			password: "",
			service:  service,
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingPassword)
			},
		},
		{
			name:     "Hash não configurado - login indisponível",
			password: "qualquer",
			service:  NewService(&config.Config{}),
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrNotConfigured)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.service.Login(tt.password)

			tt.validate(t, token, err)
		})
	}
}

func TestValidateToken(t *testing.T) {
	cfg := newTestConfig(t, "senha-correta")
	service := NewService(cfg)

	t.Run("Token emitido pelo próprio serviço - válido com role admin", func(t *testing.T) {
		token, err := service.Login("senha-correta")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Token malformado - inválido", func(t *testing.T) {
		claims, err := service.ValidateToken("nao-e-um-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Token assinado com outro segredo - inválido", func(t *testing.T) {
		otherCfg := newTestConfig(t, "senha-correta")
		otherCfg.Auth.JWTSecret = "outro-segredo"

		token, err := NewService(otherCfg).Login("senha-correta")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

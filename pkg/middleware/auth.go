package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
)

type contextKey string

const (
	// ContextKeyAdmin guarda as claims da sessão do operador
	ContextKeyAdmin contextKey = "admin"
	// ContextKeyClient guarda o cliente resolvido pelo token de dashboard
	ContextKeyClient contextKey = "client"
)

// TokenValidator valida o token de sessão do operador
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.AdminClaims, error)
}

// DashboardTokenResolver resolve um token de dashboard para o cliente dono dele
type DashboardTokenResolver interface {
	GetClientByDashboardToken(token string) (*domain.Client, error)
}

// AdminAuth exige um token JWT de sessão de operador no header Authorization
func AdminAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token é obrigatório", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DashboardAuth autentica pelo token de dashboard do cliente. O token é uma
// capability: quem o possui tem acesso de leitura ao dashboard daquele cliente.
// Aceito no header X-Dashboard-Token ou no query param token (links compartilháveis)
func DashboardAuth(resolver DashboardTokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Dashboard-Token")
			if token == "" {
				token = r.URL.Query().Get("token")
			}

			if token == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidDashboardToken, "Token de dashboard é obrigatório", nil)
				return
			}

			client, err := resolver.GetClientByDashboardToken(token)
			if err != nil || client == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidDashboardToken, "Token de dashboard inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClient, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientFromContext retorna o cliente autenticado pelo token de dashboard
func ClientFromContext(ctx context.Context) *domain.Client {
	client, _ := ctx.Value(ContextKeyClient).(*domain.Client)
	return client
}

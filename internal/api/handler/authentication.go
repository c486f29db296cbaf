package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/client-reporting-api/internal/usecases/authenticating"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
)

type LoginRequest struct {
	Password string `json:"password"`
}

// Login autentica o operador da agência e emite o token de sessão
func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authenticating.ErrMissingPassword):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Senha é obrigatória", nil)
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Senha incorreta", nil)
	case errors.Is(err, authenticating.ErrNotConfigured):
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Autenticação não configurada", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao realizar login", nil)
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/internal/usecases/clientmgmt"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
)

type ConnectAccountsResponse struct {
	ClientID string              `json:"client_id"`
	Accounts []*domain.AdAccount `json:"accounts"`
}

// GoogleOAuthCallback recebe o redirect do consentimento OAuth do Google. O
// parâmetro state carrega o ID do cliente ao qual as contas serão vinculadas
func GoogleOAuthCallback(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		clientID := r.URL.Query().Get("state")

		if code == "" || clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros code e state são obrigatórios", nil)
			return
		}

		accounts, err := service.ConnectGoogleAccounts(clientID, code)
		if err != nil {
			handleOAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ConnectAccountsResponse{
			ClientID: clientID,
			Accounts: accounts,
		})
	}
}

// MetaOAuthCallback recebe o redirect do consentimento OAuth do Meta
func MetaOAuthCallback(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		clientID := r.URL.Query().Get("state")

		if code == "" || clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros code e state são obrigatórios", nil)
			return
		}

		accounts, err := service.ConnectMetaAccounts(clientID, code)
		if err != nil {
			handleOAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ConnectAccountsResponse{
			ClientID: clientID,
			Accounts: accounts,
		})
	}
}

func handleOAuthError(w http.ResponseWriter, err error) {
	var exchangeErr *integrator.AuthExchangeError
	var apiErr *integrator.ProviderAPIError

	switch {
	case errors.Is(err, clientmgmt.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
	case errors.Is(err, clientmgmt.ErrNoAccountsFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nenhuma conta de anúncio encontrada para o token", nil)
	case errors.As(err, &exchangeErr):
		logrus.WithError(err).Error("Falha na troca do authorization code")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Provedor rejeitou o authorization code", nil)
	case errors.As(err, &apiErr):
		logrus.WithError(err).Error("Erro na API do provedor durante a conexão de contas")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar a API do provedor", nil)
	default:
		logrus.WithError(err).Error("Erro ao conectar contas de anúncio")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao conectar contas", nil)
	}
}

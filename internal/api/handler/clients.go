package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/internal/usecases/clientmgmt"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
)

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	LogoURL *string `json:"logo_url,omitempty"`
}

func CreateClient(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateClientRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		client, err := service.CreateClient(req.Name, req.Email, req.LogoURL)
		if err != nil {
			if errors.Is(err, clientmgmt.ErrMissingRequiredData) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome e email são obrigatórios", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao criar cliente")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar cliente", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client)
	}
}

func GetClient(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		clientID := params.ByName("id")

		client, err := service.GetClient(clientID)
		if err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client)
	}
}

func ListClients(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := service.ListClients()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar clientes")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes", nil)
			return
		}

		if clients == nil {
			clients = []*domain.Client{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clients)
	}
}

func UpdateClient(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		var req domain.UpdateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.ID = params.ByName("id")

		if err := service.UpdateClient(&req); err != nil {
			handleClientError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RotateDashboardToken gera um novo token de dashboard para o cliente. O token
// anterior é invalidado imediatamente
func RotateDashboardToken(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		clientID := params.ByName("id")

		newToken, err := service.RotateDashboardToken(clientID)
		if err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"dashboard_token": newToken,
		})
	}
}

// ListClientAccounts lista as contas de anúncio conectadas ao cliente
func ListClientAccounts(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		clientID := params.ByName("id")

		accounts, err := service.ListAccounts(clientID)
		if err != nil {
			handleClientError(w, err)
			return
		}

		if accounts == nil {
			accounts = []*domain.AdAccount{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

// ListClientSyncLogs lista o histórico de sincronizações do cliente
func ListClientSyncLogs(service clientmgmt.ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		clientID := params.ByName("id")

		limit := parseIntQuery(r, "limit", 50)

		logs, err := service.ListSyncLogs(clientID, limit)
		if err != nil {
			handleClientError(w, err)
			return
		}

		if logs == nil {
			logs = []*domain.SyncLog{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(logs)
	}
}

func handleClientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clientmgmt.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes", nil)
	case errors.Is(err, clientmgmt.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
	default:
		logrus.WithError(err).Error("Erro na operação de cliente")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na operação", nil)
	}
}

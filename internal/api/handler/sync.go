package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator"
	"github.com/vfg2006/client-reporting-api/internal/scheduler"
	"github.com/vfg2006/client-reporting-api/internal/usecases/syncing"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
)

type SyncClientResponse struct {
	ClientID      string `json:"client_id"`
	RecordsSynced int    `json:"records_synced"`
}

// SyncClient dispara a sincronização imediata de um cliente. A chamada é
// síncrona: responde só depois que todas as contas foram processadas
func SyncClient(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		clientID := params.ByName("id")

		windowDays := parseIntQuery(r, "window_days", 30)

		records, err := service.SyncClient(clientID, windowDays)
		if err != nil {
			handleSyncError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SyncClientResponse{
			ClientID:      clientID,
			RecordsSynced: records,
		})
	}
}

// TriggerBatchSync dispara em background a sincronização de todos os clientes
func TriggerBatchSync(syncScheduler *scheduler.DailySyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		syncScheduler.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "sincronização iniciada",
		})
	}
}

// GetSyncStatus retorna o status do agendador de sincronização
func GetSyncStatus(syncScheduler *scheduler.DailySyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(syncScheduler.GetStatus())
	}
}

func handleSyncError(w http.ResponseWriter, err error) {
	var refreshErr *integrator.TokenRefreshError
	var apiErr *integrator.ProviderAPIError

	switch {
	case errors.Is(err, syncing.ErrMissingClientID):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "client_id é obrigatório", nil)
	case errors.Is(err, syncing.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
	case errors.As(err, &refreshErr):
		logrus.WithError(err).Error("Refresh token rejeitado durante a sincronização")
		apiErrors.WriteError(w, apiErrors.ErrReauthRequired, "Conta precisa ser reconectada via OAuth", nil)
	case errors.As(err, &apiErr):
		logrus.WithError(err).Error("Erro na API do provedor durante a sincronização")
		apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Falha na coleta de métricas", nil)
	default:
		logrus.WithError(err).Error("Erro na sincronização")
		apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Falha na sincronização", nil)
	}
}

// parseIntQuery lê um parâmetro inteiro da query string com valor default
func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

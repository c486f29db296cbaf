package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/client-reporting-api/infrastructure/repository/mocks"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	syncmocks "github.com/vfg2006/client-reporting-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestConfig() *config.Config {
	return &config.Config{
		DailySync: config.DailySync{
			CronSchedule:  "0 3 * * *",
			WindowDays:    1,
			StaleLogHours: 6,
			Enabled:       true,
		},
	}
}

func TestSyncAllClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewDailySyncService(syncer, syncLogRepo, newTestConfig())

	results := []domain.ClientSyncResult{
		{ClientID: "cl1", ClientName: "Cliente Um", Status: string(domain.SyncStatusSuccess), Records: 10},
		{ClientID: "cl2", ClientName: "Cliente Dois", Status: string(domain.SyncStatusError), Error: "token expirado"},
	}

	// A varredura de logs presos em running acontece antes do lote
	syncLogRepo.EXPECT().MarkStaleRunning(6).Return(int64(1), nil)
	syncer.EXPECT().SyncAllClients(1).Return(results)

	service.syncAllClients()

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, results, status["last_results"])
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestSyncAllClientsJaEmAndamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewDailySyncService(syncer, syncLogRepo, newTestConfig())
	service.syncRunning = true

	// Nenhuma expectativa configurada: um disparo concorrente deve ser ignorado
	service.syncAllClients()
}

func TestSyncAllClientsFalhaNaVarredura(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewDailySyncService(syncer, syncLogRepo, newTestConfig())

	// Falha na varredura não impede o lote
	syncLogRepo.EXPECT().MarkStaleRunning(6).Return(int64(0), errors.New("conexão recusada"))
	syncer.EXPECT().SyncAllClients(1).Return(nil)

	service.syncAllClients()
}

func TestGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewDailySyncService(syncer, syncLogRepo, newTestConfig())

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 1, status["sync_window_days"])
	assert.Equal(t, false, status["sync_running"])
}

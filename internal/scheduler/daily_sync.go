package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/repository"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/internal/usecases/syncing"
)

// DailySyncConfig representa a configuração do agendador de sincronização diária
type DailySyncConfig struct {
	CronSchedule  string
	WindowDays    int
	StaleLogHours int
	SyncEnabled   bool
}

// DailySyncService agenda a sincronização incremental diária de todos os
// clientes e expõe o disparo manual usado pela API
type DailySyncService struct {
	scheduler           *gocron.Scheduler
	config              DailySyncConfig
	syncService         syncing.Syncer
	syncLogRepo         repository.SyncLogRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         []domain.ClientSyncResult
}

// NewDailySyncService cria uma nova instância do agendador de sincronização diária
func NewDailySyncService(
	syncService syncing.Syncer,
	syncLogRepo repository.SyncLogRepository,
	appConfig *config.Config,
) *DailySyncService {
	syncConfig := DailySyncConfig{
		CronSchedule:  appConfig.DailySync.CronSchedule,
		WindowDays:    appConfig.DailySync.WindowDays,
		StaleLogHours: appConfig.DailySync.StaleLogHours,
		SyncEnabled:   appConfig.DailySync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"window_days":     syncConfig.WindowDays,
		"stale_log_hours": syncConfig.StaleLogHours,
		"sync_enabled":    syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização diária carregada")

	return &DailySyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		syncService: syncService,
		syncLogRepo: syncLogRepo,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *DailySyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização diária desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização diária")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllClients()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização diária: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização diária")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllClients executa a sincronização em lote. Apenas uma execução por vez:
// disparos concorrentes (cron + manual) são ignorados
func (s *DailySyncService) syncAllClients() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização diária já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	// Registros presos em running de execuções interrompidas viram erro antes
	// de começar o novo lote
	if s.config.StaleLogHours > 0 {
		swept, err := s.syncLogRepo.MarkStaleRunning(s.config.StaleLogHours)
		if err != nil {
			logrus.WithError(err).Error("Erro ao varrer sync logs presos em running")
		} else if swept > 0 {
			logrus.Warnf("%d sync log(s) preso(s) em running marcados como erro", swept)
		}
	}

	logrus.Info("Iniciando sincronização diária de todos os clientes")

	results := s.syncService.SyncAllClients(s.config.WindowDays)
	s.lastResults = results

	succeeded, failed, records := 0, 0, 0
	for _, result := range results {
		records += result.Records
		if result.Status == string(domain.SyncStatusError) {
			failed++
			logrus.WithFields(logrus.Fields{
				"client_id":   result.ClientID,
				"client_name": result.ClientName,
				"error":       result.Error,
			}).Error("Cliente com falha na sincronização diária")
		} else {
			succeeded++
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"clients":   len(results),
		"succeeded": succeeded,
		"failed":    failed,
		"records":   records,
	}).Info("Sincronização diária concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma sincronização em lote
func (s *DailySyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de todos os clientes")
	go s.syncAllClients()
}

// GetStatus retorna o status atual do agendador
func (s *DailySyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_window_days":       s.config.WindowDays,
		"sync_running":           running,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_results":           s.lastResults,
	}
}

package syncing

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/googleclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/repository"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/metrics"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

// tokenExpiryBuffer antecipa a renovação do access token: um token que expira
// durante a coleta derruba a sincronização no meio
const tokenExpiryBuffer = 5 * time.Minute

// refreshedTokenTTL é a validade assumida para um access token renovado do
// Google. O endpoint de refresh devolve expires_in de 1h
const refreshedTokenTTL = time.Hour

// Syncer coleta métricas das plataformas e as grava no banco
type Syncer interface {
	SyncClient(clientID string, windowDays int) (int, error)
	SyncAllClients(windowDays int) []domain.ClientSyncResult
}

type Service struct {
	clientRepo   repository.ClientRepository
	accountRepo  repository.AccountRepository
	metricRepo   repository.CampaignMetricRepository
	syncLogRepo  repository.SyncLogRepository
	googleClient googleclient.Client
	metaClient   metaclient.Client
	now          func() time.Time
}

func NewService(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	metricRepo repository.CampaignMetricRepository,
	syncLogRepo repository.SyncLogRepository,
	googleClient googleclient.Client,
	metaClient metaclient.Client,
) *Service {
	return &Service{
		clientRepo:   clientRepo,
		accountRepo:  accountRepo,
		metricRepo:   metricRepo,
		syncLogRepo:  syncLogRepo,
		googleClient: googleClient,
		metaClient:   metaClient,
		now:          time.Now,
	}
}

// SyncClient sincroniza todas as contas de um cliente, em sequência. A
// primeira conta que falha aborta as restantes: a causa mais comum é token
// expirado ou limite de quota, e insistir nas demais contas só piora o quadro.
// Retorna o total de linhas gravadas
func (s *Service) SyncClient(clientID string, windowDays int) (int, error) {
	if clientID == "" {
		return 0, ErrMissingClientID
	}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, ErrClientNotFound
	}

	accounts, err := s.accountRepo.ListByClientID(client.ID)
	if err != nil {
		return 0, err
	}

	if len(accounts) == 0 {
		logrus.Infof("Cliente %s não possui contas de anúncio conectadas", client.ID)
		return 0, nil
	}

	dateStart, dateEnd := s.dateWindow(windowDays)

	total := 0
	for _, account := range accounts {
		records, err := s.syncAccount(account, dateStart, dateEnd)
		total += records
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// syncAccount sincroniza uma conta. O registro de sync log é criado em running
// antes da coleta e finalizado exatamente uma vez, mesmo quando a coleta falha
func (s *Service) syncAccount(account *domain.AdAccount, dateStart, dateEnd string) (int, error) {
	logID, err := utils.GenerateID()
	if err != nil {
		return 0, err
	}

	syncLog := &domain.SyncLog{
		ID:             logID,
		ClientID:       account.ClientID,
		AdAccountID:    account.ID,
		Platform:       account.Platform,
		Status:         domain.SyncStatusRunning,
		DateRangeStart: dateStart,
		DateRangeEnd:   dateEnd,
		StartedAt:      s.now(),
	}

	if err := s.syncLogRepo.Create(syncLog); err != nil {
		return 0, err
	}

	started := s.now()

	records, err := s.collectAndStore(account, dateStart, dateEnd)

	metrics.SyncDurationSeconds.WithLabelValues(string(account.Platform)).Observe(s.now().Sub(started).Seconds())

	if err != nil {
		errorMessage := err.Error()
		if completeErr := s.syncLogRepo.Complete(syncLog.ID, domain.SyncStatusError, records, &errorMessage); completeErr != nil {
			logrus.WithError(completeErr).Errorf("Erro ao finalizar sync log %s como erro", syncLog.ID)
		}

		metrics.SyncRunsTotal.WithLabelValues(string(account.Platform), string(domain.SyncStatusError)).Inc()

		logrus.WithError(err).Errorf("Falha na sincronização da conta %s (%s)", account.AccountID, account.Platform)

		return records, err
	}

	if err := s.syncLogRepo.Complete(syncLog.ID, domain.SyncStatusSuccess, records, nil); err != nil {
		return records, err
	}

	metrics.SyncRunsTotal.WithLabelValues(string(account.Platform), string(domain.SyncStatusSuccess)).Inc()
	metrics.SyncRecordsTotal.WithLabelValues(string(account.Platform)).Add(float64(records))

	logrus.Infof("Conta %s (%s) sincronizada: %d registro(s) no período %s a %s",
		account.AccountID, account.Platform, records, dateStart, dateEnd)

	return records, nil
}

func (s *Service) collectAndStore(account *domain.AdAccount, dateStart, dateEnd string) (int, error) {
	accessToken, err := s.ensureValidToken(account)
	if err != nil {
		return 0, err
	}

	var collected []domain.CampaignMetric

	switch account.Platform {
	case domain.PlatformGoogle:
		collected, err = s.googleClient.FetchDailyCampaignMetrics(account.AccountID, accessToken, dateStart, dateEnd)
	case domain.PlatformMeta:
		collected, err = s.metaClient.FetchDailyCampaignMetrics(account.AccountID, accessToken, dateStart, dateEnd)
	default:
		return 0, domain.ErrUnknownPlatform
	}

	if err != nil {
		return 0, err
	}

	for i := range collected {
		collected[i].ClientID = account.ClientID
		collected[i].AdAccountID = account.ID
	}

	if err := s.metricRepo.UpsertBatch(collected); err != nil {
		return 0, err
	}

	return len(collected), nil
}

// ensureValidToken renova o access token do Google quando ele está a menos de
// cinco minutos de expirar. Tokens do Meta são de longa duração e não têm
// refresh: quando expiram a conta precisa ser reconectada
func (s *Service) ensureValidToken(account *domain.AdAccount) (string, error) {
	if !account.TokenExpiresWithin(tokenExpiryBuffer) {
		return account.AccessToken, nil
	}

	if account.Platform != domain.PlatformGoogle || account.RefreshToken == nil || *account.RefreshToken == "" {
		return account.AccessToken, nil
	}

	logrus.Infof("Renovando access token da conta %s", account.AccountID)

	newToken, err := s.googleClient.RefreshAccessToken(*account.RefreshToken)
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(refreshedTokenTTL)
	if err := s.accountRepo.UpdateTokens(account.ID, newToken, &expiresAt); err != nil {
		return "", err
	}

	account.AccessToken = newToken
	account.TokenExpiresAt = &expiresAt

	return newToken, nil
}

// SyncAllClients sincroniza todos os clientes cadastrados. A falha de um
// cliente não interrompe os demais: cada um recebe seu próprio resultado
func (s *Service) SyncAllClients(windowDays int) []domain.ClientSyncResult {
	clients, err := s.clientRepo.List()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar clientes para sincronização em lote")
		return nil
	}

	results := make([]domain.ClientSyncResult, 0, len(clients))
	for _, client := range clients {
		result := domain.ClientSyncResult{
			ClientID:   client.ID,
			ClientName: client.Name,
			Status:     string(domain.SyncStatusSuccess),
		}

		records, err := s.SyncClient(client.ID, windowDays)
		result.Records = records
		if err != nil {
			result.Status = string(domain.SyncStatusError)
			result.Error = err.Error()
		}

		results = append(results, result)
	}

	return results
}

// dateWindow calcula o período incremental [hoje-windowDays, hoje]
func (s *Service) dateWindow(windowDays int) (string, string) {
	if windowDays <= 0 {
		windowDays = 1
	}

	today := s.now()
	return utils.FormatDate(today.AddDate(0, 0, -windowDays)), utils.FormatDate(today)
}

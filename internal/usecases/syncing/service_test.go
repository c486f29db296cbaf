package syncing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	googlemocks "github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/mocks"
	metamocks "github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/client-reporting-api/infrastructure/repository/mocks"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	clientRepo   *repomocks.MockClientRepository
	accountRepo  *repomocks.MockAccountRepository
	metricRepo   *repomocks.MockCampaignMetricRepository
	syncLogRepo  *repomocks.MockSyncLogRepository
	googleClient *googlemocks.MockClient
	metaClient   *metamocks.MockClient
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		clientRepo:   repomocks.NewMockClientRepository(ctrl),
		accountRepo:  repomocks.NewMockAccountRepository(ctrl),
		metricRepo:   repomocks.NewMockCampaignMetricRepository(ctrl),
		syncLogRepo:  repomocks.NewMockSyncLogRepository(ctrl),
		googleClient: googlemocks.NewMockClient(ctrl),
		metaClient:   metamocks.NewMockClient(ctrl),
	}

	service := NewService(m.clientRepo, m.accountRepo, m.metricRepo, m.syncLogRepo, m.googleClient, m.metaClient)

	return service, m
}

func stringPtr(s string) *string {
	return &s
}

func TestSyncClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	farExpiry := time.Now().Add(2 * time.Hour)

	client := &domain.Client{ID: "cl1", Name: "Cliente Um"}
	googleAccount := &domain.AdAccount{
		ID:             "acc1",
		ClientID:       "cl1",
		Platform:       domain.PlatformGoogle,
		AccountID:      "1234567890",
		AccessToken:    "google-token",
		TokenExpiresAt: &farExpiry,
	}
	metaAccount := &domain.AdAccount{
		ID:             "acc2",
		ClientID:       "cl1",
		Platform:       domain.PlatformMeta,
		AccountID:      "act_999",
		AccessToken:    "meta-token",
		TokenExpiresAt: &farExpiry,
	}

	tests := []struct {
		name     string
		clientID string
		setup    func()
		validate func(t *testing.T, records int, err error)
	}{
		{
			name:     "ClientID vazio - retorna erro de validação",
			clientID: "",
			setup:    func() {},
			validate: func(t *testing.T, records int, err error) {
				assert.ErrorIs(t, err, ErrMissingClientID)
				assert.Equal(t, 0, records)
			},
		},
		{
			name:     "Cliente inexistente - retorna erro",
			clientID: "ghost",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("ghost").Return(nil, nil)
			},
			validate: func(t *testing.T, records int, err error) {
				assert.ErrorIs(t, err, ErrClientNotFound)
			},
		},
		{
			name:     "Cliente sem contas conectadas - sucesso sem registros",
			clientID: "cl1",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.accountRepo.EXPECT().ListByClientID("cl1").Return(nil, nil)
			},
			validate: func(t *testing.T, records int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0, records)
			},
		},
		{
			name:     "Conta Google sincronizada - linhas carimbadas com cliente e conta",
			clientID: "cl1",
			setup: func() {
				collected := []domain.CampaignMetric{
					{CampaignID: "camp1", Date: "2024-05-10", Spend: 10},
					{CampaignID: "camp1", Date: "2024-05-11", Spend: 12},
				}

				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.accountRepo.EXPECT().ListByClientID("cl1").Return([]*domain.AdAccount{googleAccount}, nil)
				m.syncLogRepo.EXPECT().Create(gomock.Any()).Return(nil)
				m.googleClient.EXPECT().
					FetchDailyCampaignMetrics("1234567890", "google-token", gomock.Any(), gomock.Any()).
					Return(collected, nil)
				m.metricRepo.EXPECT().UpsertBatch(gomock.Any()).DoAndReturn(func(batch []domain.CampaignMetric) error {
					assert.Len(t, batch, 2)
					for _, metric := range batch {
						assert.Equal(t, "cl1", metric.ClientID)
						assert.Equal(t, "acc1", metric.AdAccountID)
					}
					return nil
				})
				m.syncLogRepo.EXPECT().Complete(gomock.Any(), domain.SyncStatusSuccess, 2, gomock.Nil()).Return(nil)
			},
			validate: func(t *testing.T, records int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 2, records)
			},
		},
		{
			name:     "Falha na primeira conta - log finalizado como erro e contas restantes abortadas",
			clientID: "cl1",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.accountRepo.EXPECT().ListByClientID("cl1").
					Return([]*domain.AdAccount{googleAccount, metaAccount}, nil)
				m.syncLogRepo.EXPECT().Create(gomock.Any()).Return(nil)
				m.googleClient.EXPECT().
					FetchDailyCampaignMetrics("1234567890", "google-token", gomock.Any(), gomock.Any()).
					Return(nil, errors.New("quota excedida"))
				m.syncLogRepo.EXPECT().
					Complete(gomock.Any(), domain.SyncStatusError, 0, gomock.Not(gomock.Nil())).
					Return(nil)
				// Nenhuma expectativa para a conta Meta: ela não deve ser tocada
			},
			validate: func(t *testing.T, records int, err error) {
				assert.EqualError(t, err, "quota excedida")
				assert.Equal(t, 0, records)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			records, err := service.SyncClient(tt.clientID, 30)

			tt.validate(t, records, err)
		})
	}
}

func TestEnsureValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	now := time.Now()
	service.now = func() time.Time { return now }

	in2min := now.Add(2 * time.Minute)
	in10min := now.Add(10 * time.Minute)

	tests := []struct {
		name     string
		account  *domain.AdAccount
		setup    func()
		validate func(t *testing.T, account *domain.AdAccount, token string, err error)
	}{
		{
			name: "Token Google a 2 minutos de expirar - renovado e persistido",
			account: &domain.AdAccount{
				ID:             "acc1",
				Platform:       domain.PlatformGoogle,
				AccountID:      "1234567890",
				AccessToken:    "stale-token",
				RefreshToken:   stringPtr("refresh-token"),
				TokenExpiresAt: &in2min,
			},
			setup: func() {
				m.googleClient.EXPECT().RefreshAccessToken("refresh-token").Return("fresh-token", nil)
				m.accountRepo.EXPECT().UpdateTokens("acc1", "fresh-token", gomock.Any()).
					DoAndReturn(func(_ string, _ string, expiresAt *time.Time) error {
						assert.Equal(t, now.Add(time.Hour), *expiresAt)
						return nil
					})
			},
			validate: func(t *testing.T, account *domain.AdAccount, token string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "fresh-token", token)
				assert.Equal(t, "fresh-token", account.AccessToken)
			},
		},
		{
			name: "Token Google a 10 minutos de expirar - mantido sem renovação",
			account: &domain.AdAccount{
				ID:             "acc1",
				Platform:       domain.PlatformGoogle,
				AccountID:      "1234567890",
				AccessToken:    "still-valid",
				RefreshToken:   stringPtr("refresh-token"),
				TokenExpiresAt: &in10min,
			},
			setup: func() {},
			validate: func(t *testing.T, account *domain.AdAccount, token string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "still-valid", token)
			},
		},
		{
			name: "Token Meta expirado - sem refresh, mantém o token atual",
			account: &domain.AdAccount{
				ID:             "acc2",
				Platform:       domain.PlatformMeta,
				AccountID:      "act_999",
				AccessToken:    "meta-token",
				TokenExpiresAt: &in2min,
			},
			setup: func() {},
			validate: func(t *testing.T, account *domain.AdAccount, token string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "meta-token", token)
			},
		},
		{
			name: "Falha na renovação - erro propagado",
			account: &domain.AdAccount{
				ID:             "acc1",
				Platform:       domain.PlatformGoogle,
				AccountID:      "1234567890",
				AccessToken:    "stale-token",
				RefreshToken:   stringPtr("revoked"),
				TokenExpiresAt: &in2min,
			},
			setup: func() {
				m.googleClient.EXPECT().RefreshAccessToken("revoked").
					Return("", errors.New("invalid_grant"))
			},
			validate: func(t *testing.T, account *domain.AdAccount, token string, err error) {
				assert.EqualError(t, err, "invalid_grant")
				assert.Empty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.ensureValidToken(tt.account)

			tt.validate(t, tt.account, token, err)
		})
	}
}

func TestSyncAllClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	clients := []*domain.Client{
		{ID: "cl1", Name: "Cliente Um"},
		{ID: "cl2", Name: "Cliente Dois"},
	}

	// O primeiro cliente falha na listagem de contas; o segundo deve ser
	// sincronizado normalmente
	m.clientRepo.EXPECT().List().Return(clients, nil)

	m.clientRepo.EXPECT().GetByID("cl1").Return(clients[0], nil)
	m.accountRepo.EXPECT().ListByClientID("cl1").Return(nil, errors.New("conexão recusada"))

	m.clientRepo.EXPECT().GetByID("cl2").Return(clients[1], nil)
	m.accountRepo.EXPECT().ListByClientID("cl2").Return([]*domain.AdAccount{}, nil)

	results := service.SyncAllClients(7)

	assert.Len(t, results, 2)

	assert.Equal(t, "cl1", results[0].ClientID)
	assert.Equal(t, string(domain.SyncStatusError), results[0].Status)
	assert.Equal(t, "conexão recusada", results[0].Error)

	assert.Equal(t, "cl2", results[1].ClientID)
	assert.Equal(t, string(domain.SyncStatusSuccess), results[1].Status)
	assert.Equal(t, 0, results[1].Records)
}

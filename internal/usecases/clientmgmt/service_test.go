package clientmgmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/googledomain"
	googlemocks "github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/mocks"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metadomain"
	metamocks "github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/client-reporting-api/infrastructure/repository/mocks"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	clientRepo   *repomocks.MockClientRepository
	accountRepo  *repomocks.MockAccountRepository
	syncLogRepo  *repomocks.MockSyncLogRepository
	googleClient *googlemocks.MockClient
	metaClient   *metamocks.MockClient
}

func newTestService(ctrl *gomock.Controller) (ClientManager, *serviceMocks) {
	m := &serviceMocks{
		clientRepo:   repomocks.NewMockClientRepository(ctrl),
		accountRepo:  repomocks.NewMockAccountRepository(ctrl),
		syncLogRepo:  repomocks.NewMockSyncLogRepository(ctrl),
		googleClient: googlemocks.NewMockClient(ctrl),
		metaClient:   metamocks.NewMockClient(ctrl),
	}

	service := NewService(m.clientRepo, m.accountRepo, m.syncLogRepo, m.googleClient, m.metaClient)

	return service, m
}

func TestCreateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	tests := []struct {
		name       string
		clientName string
		email      string
		setup      func()
		validate   func(t *testing.T, client *domain.Client, err error)
	}{
		{
			name:       "Dados completos - cliente criado com slug e token de dashboard",
			clientName: "Loja do João",
			email:      " Contato@Loja.com ",
			setup: func() {
				m.clientRepo.EXPECT().Create(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, client.ID)
				assert.Equal(t, "contato@loja.com", client.Email)
				assert.Equal(t, "loja-do-joo", client.Slug)
				assert.Len(t, client.DashboardToken, 32)
			},
		},
		{
			name:       "Nome vazio - erro de validação",
			clientName: "",
			email:      "a@b.com",
			setup:      func() {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
				assert.Nil(t, client)
			},
		},
		{
			name:       "Email vazio - erro de validação",
			clientName: "Cliente",
			email:      "",
			setup:      func() {},
			validate: func(t *testing.T, client *domain.Client, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			client, err := service.CreateClient(tt.clientName, tt.email, nil)

			tt.validate(t, client, err)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Nome simples", input: "Loja Azul", expected: "loja-azul"},
		{name: "Espaços e hífens repetidos", input: "  Loja -- Azul  ", expected: "loja-azul"},
		{name: "Caracteres especiais removidos", input: "Cliente & Cia!", expected: "cliente-cia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}

func TestConnectGoogleAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	client := &domain.Client{ID: "cl1", Name: "Cliente Um"}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, accounts []*domain.AdAccount, err error)
	}{
		{
			name: "Código válido - todas as contas acessíveis são vinculadas",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.googleClient.EXPECT().ExchangeCode("auth-code").Return(&googledomain.TokenResponse{
					AccessToken:  "access",
					RefreshToken: "refresh",
					ExpiresIn:    3600,
				}, nil)
				m.googleClient.EXPECT().ListAccessibleCustomers("access").
					Return([]string{"111", "222"}, nil)
				m.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(account *domain.AdAccount) error {
					assert.Equal(t, "cl1", account.ClientID)
					assert.Equal(t, domain.PlatformGoogle, account.Platform)
					assert.Equal(t, "access", account.AccessToken)
					assert.Equal(t, "refresh", *account.RefreshToken)
					assert.NotNil(t, account.TokenExpiresAt)
					return nil
				}).Times(2)
			},
			validate: func(t *testing.T, accounts []*domain.AdAccount, err error) {
				assert.NoError(t, err)
				assert.Len(t, accounts, 2)
				assert.Equal(t, "111", accounts[0].AccountID)
				assert.Equal(t, "222", accounts[1].AccountID)
			},
		},
		{
			name: "Token sem contas acessíveis - erro específico",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.googleClient.EXPECT().ExchangeCode("auth-code").
					Return(&googledomain.TokenResponse{AccessToken: "access"}, nil)
				m.googleClient.EXPECT().ListAccessibleCustomers("access").Return(nil, nil)
			},
			validate: func(t *testing.T, accounts []*domain.AdAccount, err error) {
				assert.ErrorIs(t, err, ErrNoAccountsFound)
				assert.Nil(t, accounts)
			},
		},
		{
			name: "Falha na troca do código - erro propagado",
			setup: func() {
				m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
				m.googleClient.EXPECT().ExchangeCode("auth-code").
					Return(nil, errors.New("invalid_grant"))
			},
			validate: func(t *testing.T, accounts []*domain.AdAccount, err error) {
				assert.EqualError(t, err, "invalid_grant")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			accounts, err := service.ConnectGoogleAccounts("cl1", "auth-code")

			tt.validate(t, accounts, err)
		})
	}
}

func TestConnectMetaAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	client := &domain.Client{ID: "cl1", Name: "Cliente Um"}

	m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
	m.metaClient.EXPECT().ExchangeCode("auth-code").Return(&metadomain.TokenResponse{
		AccessToken: "long-lived",
		ExpiresIn:   5184000,
	}, nil)
	m.metaClient.EXPECT().ListAdAccounts("long-lived").Return([]metadomain.AdAccount{
		{ID: "act_123", Name: "Conta Principal"},
	}, nil)
	m.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(account *domain.AdAccount) error {
		assert.Equal(t, domain.PlatformMeta, account.Platform)
		assert.Equal(t, "act_123", account.AccountID)
		assert.Equal(t, "Conta Principal", account.AccountName)
		assert.Nil(t, account.RefreshToken)
		return nil
	})

	accounts, err := service.ConnectMetaAccounts("cl1", "auth-code")

	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestRotateDashboardToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	client := &domain.Client{ID: "cl1", DashboardToken: "old-token"}

	m.clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
	m.clientRepo.EXPECT().RotateDashboardToken("cl1", gomock.Any()).DoAndReturn(func(_ string, newToken string) error {
		assert.Len(t, newToken, 32)
		assert.NotEqual(t, "old-token", newToken)
		return nil
	})

	token, err := service.RotateDashboardToken("cl1")

	assert.NoError(t, err)
	assert.Len(t, token, 32)
}

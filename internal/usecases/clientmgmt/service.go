package clientmgmt

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/googleclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/repository"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

// ClientManager gerencia os clientes da agência e a conexão de contas de
// anúncio via OAuth
type ClientManager interface {
	CreateClient(name, email string, logoURL *string) (*domain.Client, error)
	GetClient(clientID string) (*domain.Client, error)
	GetClientByDashboardToken(token string) (*domain.Client, error)
	ListClients() ([]*domain.Client, error)
	UpdateClient(request *domain.UpdateClientRequest) error
	RotateDashboardToken(clientID string) (string, error)
	ConnectGoogleAccounts(clientID, code string) ([]*domain.AdAccount, error)
	ConnectMetaAccounts(clientID, code string) ([]*domain.AdAccount, error)
	ListAccounts(clientID string) ([]*domain.AdAccount, error)
	ListSyncLogs(clientID string, limit int) ([]*domain.SyncLog, error)
}

type Service struct {
	clientRepo   repository.ClientRepository
	accountRepo  repository.AccountRepository
	syncLogRepo  repository.SyncLogRepository
	googleClient googleclient.Client
	metaClient   metaclient.Client
}

func NewService(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	syncLogRepo repository.SyncLogRepository,
	googleClient googleclient.Client,
	metaClient metaclient.Client,
) ClientManager {
	return &Service{
		clientRepo:   clientRepo,
		accountRepo:  accountRepo,
		syncLogRepo:  syncLogRepo,
		googleClient: googleClient,
		metaClient:   metaClient,
	}
}

// CreateClient cadastra um cliente e gera o token de dashboard
func (s *Service) CreateClient(name, email string, logoURL *string) (*domain.Client, error) {
	if name == "" || email == "" {
		return nil, ErrMissingRequiredData
	}

	clientID, err := utils.GenerateID()
	if err != nil {
		return nil, ErrGenerateID
	}

	dashboardToken, err := utils.GenerateDashboardToken()
	if err != nil {
		return nil, ErrGenerateID
	}

	client := &domain.Client{
		ID:             clientID,
		Name:           name,
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Slug:           slugify(name),
		LogoURL:        logoURL,
		DashboardToken: dashboardToken,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}

	logrus.Infof("Cliente %s criado com sucesso (id: %s)", client.Name, client.ID)

	return client, nil
}

func (s *Service) GetClient(clientID string) (*domain.Client, error) {
	if clientID == "" {
		return nil, ErrMissingRequiredData
	}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	return client, nil
}

func (s *Service) GetClientByDashboardToken(token string) (*domain.Client, error) {
	if token == "" {
		return nil, ErrMissingRequiredData
	}

	return s.clientRepo.GetByDashboardToken(token)
}

func (s *Service) ListClients() ([]*domain.Client, error) {
	return s.clientRepo.List()
}

func (s *Service) UpdateClient(request *domain.UpdateClientRequest) error {
	if request.ID == "" {
		return ErrMissingRequiredData
	}

	return s.clientRepo.Update(request)
}

// RotateDashboardToken gera um novo token de dashboard. O anterior deixa de
// funcionar imediatamente - links compartilhados precisam ser redistribuídos
func (s *Service) RotateDashboardToken(clientID string) (string, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return "", err
	}

	newToken, err := utils.GenerateDashboardToken()
	if err != nil {
		return "", ErrGenerateID
	}

	if err := s.clientRepo.RotateDashboardToken(client.ID, newToken); err != nil {
		return "", err
	}

	logrus.Infof("Token de dashboard do cliente %s rotacionado", client.ID)

	return newToken, nil
}

// ConnectGoogleAccounts troca o authorization code por tokens e vincula ao
// cliente todas as contas Google Ads visíveis para o token
func (s *Service) ConnectGoogleAccounts(clientID, code string) ([]*domain.AdAccount, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}

	tokenResp, err := s.googleClient.ExchangeCode(code)
	if err != nil {
		return nil, err
	}

	customerIDs, err := s.googleClient.ListAccessibleCustomers(tokenResp.AccessToken)
	if err != nil {
		return nil, err
	}

	if len(customerIDs) == 0 {
		return nil, ErrNoAccountsFound
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	accounts := make([]*domain.AdAccount, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		var refreshToken *string
		if tokenResp.RefreshToken != "" {
			refreshToken = &tokenResp.RefreshToken
		}

		accountID, err := utils.GenerateID()
		if err != nil {
			return nil, ErrGenerateID
		}

		account := &domain.AdAccount{
			ID:             accountID,
			ClientID:       client.ID,
			Platform:       domain.PlatformGoogle,
			AccountID:      customerID,
			AccountName:    customerID,
			AccessToken:    tokenResp.AccessToken,
			RefreshToken:   refreshToken,
			TokenExpiresAt: &expiresAt,
		}

		if err := s.accountRepo.SaveOrUpdate(account); err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	logrus.Infof("%d conta(s) Google Ads vinculadas ao cliente %s", len(accounts), client.ID)

	return accounts, nil
}

// ConnectMetaAccounts troca o authorization code por um token de longa duração
// e vincula ao cliente todas as contas de anúncio visíveis
func (s *Service) ConnectMetaAccounts(clientID, code string) ([]*domain.AdAccount, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}

	tokenResp, err := s.metaClient.ExchangeCode(code)
	if err != nil {
		return nil, err
	}

	metaAccounts, err := s.metaClient.ListAdAccounts(tokenResp.AccessToken)
	if err != nil {
		return nil, err
	}

	if len(metaAccounts) == 0 {
		return nil, ErrNoAccountsFound
	}

	var expiresAt *time.Time
	if tokenResp.ExpiresIn > 0 {
		t := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	accounts := make([]*domain.AdAccount, 0, len(metaAccounts))
	for _, metaAccount := range metaAccounts {
		accountID, err := utils.GenerateID()
		if err != nil {
			return nil, ErrGenerateID
		}

		account := &domain.AdAccount{
			ID:             accountID,
			ClientID:       client.ID,
			Platform:       domain.PlatformMeta,
			AccountID:      metaAccount.ID,
			AccountName:    metaAccount.Name,
			AccessToken:    tokenResp.AccessToken,
			TokenExpiresAt: expiresAt,
		}

		if err := s.accountRepo.SaveOrUpdate(account); err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	logrus.Infof("%d conta(s) Meta vinculadas ao cliente %s", len(accounts), client.ID)

	return accounts, nil
}

func (s *Service) ListAccounts(clientID string) ([]*domain.AdAccount, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}

	return s.accountRepo.ListByClientID(client.ID)
}

func (s *Service) ListSyncLogs(clientID string, limit int) ([]*domain.SyncLog, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}

	return s.syncLogRepo.ListByClientID(client.ID, limit)
}

// slugify normaliza o nome do cliente para uso em URLs
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

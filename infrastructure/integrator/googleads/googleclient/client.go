package googleclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/googledomain"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

const providerName = "googleads"

type Client interface {
	ExchangeCode(code string) (*googledomain.TokenResponse, error)
	RefreshAccessToken(refreshToken string) (string, error)
	ListAccessibleCustomers(accessToken string) ([]string, error)
	FetchDailyCampaignMetrics(customerID, accessToken, dateStart, dateEnd string) ([]domain.CampaignMetric, error)
}

type GoogleClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ExchangeCode troca um authorization code por access e refresh tokens
func (c *GoogleClient) ExchangeCode(code string) (*googledomain.TokenResponse, error) {
	form := url.Values{}
	form.Add("code", code)
	form.Add("client_id", c.Cfg.Google.ClientID)
	form.Add("client_secret", c.Cfg.Google.ClientSecret)
	form.Add("redirect_uri", fmt.Sprintf("%s/v1/auth/google/callback", c.Cfg.App.BaseURL))
	form.Add("grant_type", "authorization_code")

	tokenResp, err := c.postTokenForm(form)
	if err != nil {
		return nil, &integrator.AuthExchangeError{Provider: providerName, Err: err}
	}

	if tokenResp.Error != "" {
		logrus.WithFields(logrus.Fields{
			"error":             tokenResp.Error,
			"error_description": tokenResp.ErrorDescription,
		}).Error("googleads: provedor rejeitou o authorization code")

		return nil, &integrator.AuthExchangeError{
			Provider: providerName,
			Err:      fmt.Errorf("%s: %s", tokenResp.Error, tokenResp.ErrorDescription),
		}
	}

	return tokenResp, nil
}

// RefreshAccessToken troca um refresh token por um novo access token. Uma
// rejeição aqui não é transitória: a conta precisa ser reconectada via OAuth
func (c *GoogleClient) RefreshAccessToken(refreshToken string) (string, error) {
	form := url.Values{}
	form.Add("refresh_token", refreshToken)
	form.Add("client_id", c.Cfg.Google.ClientID)
	form.Add("client_secret", c.Cfg.Google.ClientSecret)
	form.Add("grant_type", "refresh_token")

	tokenResp, err := c.postTokenForm(form)
	if err != nil {
		return "", &integrator.TokenRefreshError{Provider: providerName, Err: err}
	}

	if tokenResp.Error != "" || tokenResp.AccessToken == "" {
		logrus.WithFields(logrus.Fields{
			"error":             tokenResp.Error,
			"error_description": tokenResp.ErrorDescription,
		}).Error("googleads: provedor rejeitou o refresh token - conta precisa ser reconectada")

		return "", &integrator.TokenRefreshError{
			Provider: providerName,
			Err:      fmt.Errorf("%s: %s", tokenResp.Error, tokenResp.ErrorDescription),
		}
	}

	return tokenResp.AccessToken, nil
}

// ListAccessibleCustomers enumera os IDs de contas visíveis para o token
func (c *GoogleClient) ListAccessibleCustomers(accessToken string) ([]string, error) {
	requestURL := fmt.Sprintf("%s/customers:listAccessibleCustomers", c.Cfg.Google.URL)

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.Cfg.Google.DeveloperToken)

	body, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var response googledomain.ListAccessibleCustomersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("googleads: erro ao decodificar lista de contas")
		return nil, err
	}

	customerIDs := make([]string, 0, len(response.ResourceNames))
	for _, resourceName := range response.ResourceNames {
		customerIDs = append(customerIDs, strings.TrimPrefix(resourceName, "customers/"))
	}

	return customerIDs, nil
}

// FetchDailyCampaignMetrics busca o relatório diário de campanhas habilitadas
// no período (inclusivo) e normaliza cada linha para o registro canônico
func (c *GoogleClient) FetchDailyCampaignMetrics(customerID, accessToken, dateStart, dateEnd string) ([]domain.CampaignMetric, error) {
	query := fmt.Sprintf(`SELECT
  campaign.id,
  campaign.name,
  segments.date,
  metrics.cost_micros,
  metrics.impressions,
  metrics.clicks,
  metrics.conversions,
  metrics.conversions_value,
  metrics.ctr
FROM campaign
WHERE campaign.status = 'ENABLED'
  AND segments.date BETWEEN '%s' AND '%s'
ORDER BY segments.date DESC`, dateStart, dateEnd)

	rows, err := c.search(customerID, accessToken, query)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.CampaignMetric, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, googledomain.FactoryCampaignMetric(row))
	}

	return metrics, nil
}

// search executa uma consulta GAQL contra a conta informada. Em hierarquias
// com conta gerenciadora a API exige o header login-customer-id com o ID da
// MCC, distinto do ID da conta alvo - os dois são sempre enviados
func (c *GoogleClient) search(customerID, accessToken, query string) ([]googledomain.SearchRow, error) {
	targetID := strings.ReplaceAll(customerID, "-", "")

	loginID := c.Cfg.Google.MCCCustomerID
	if loginID == "" {
		loginID = targetID
	}
	loginID = strings.ReplaceAll(loginID, "-", "")

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.Google.URL, targetID)

	req, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("googleads: erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.Cfg.Google.DeveloperToken)
	req.Header.Set("login-customer-id", loginID)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("googleads: erro ao decodificar JSON do relatório")
		return nil, err
	}

	return response.Results, nil
}

// doRequest executa a requisição e converte respostas não-2xx em
// ProviderAPIError preservando o corpo
func (c *GoogleClient) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("googleads: erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    req.URL.Path,
		}).Error("googleads: API retornou erro")

		return nil, &integrator.ProviderAPIError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

func (c *GoogleClient) postTokenForm(form url.Values) (*googledomain.TokenResponse, error) {
	resp, err := c.httpClient.Post(
		c.Cfg.Google.TokenURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	var tokenResp googledomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do endpoint de token: %w", err)
	}

	// O endpoint OAuth retorna 400 com um campo error no payload; o campo é
	// verificado pelo chamador para distinguir o tipo de rejeição
	if resp.StatusCode < 200 || resp.StatusCode > 299 && tokenResp.Error == "" {
		return nil, fmt.Errorf("endpoint de token retornou status %d: %s", resp.StatusCode, string(body))
	}

	return &tokenResp, nil
}

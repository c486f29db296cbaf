package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metadomain"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

const providerName = "meta"

type Client interface {
	ExchangeCode(code string) (*metadomain.TokenResponse, error)
	ListAdAccounts(accessToken string) ([]metadomain.AdAccount, error)
	FetchDailyCampaignMetrics(accountID, accessToken, dateStart, dateEnd string) ([]domain.CampaignMetric, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// doGet executa um GET contra a Graph API e converte respostas não-2xx em
// ProviderAPIError preservando o corpo
func (c *MetaClient) doGet(requestURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		logrus.WithError(err).Error("meta: erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope metadomain.ErrorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
			logrus.WithFields(logrus.Fields{
				"status":     resp.StatusCode,
				"code":       envelope.Error.Code,
				"type":       envelope.Error.Type,
				"fbtrace_id": envelope.Error.FBTraceID,
			}).Error("meta: Graph API retornou erro")
		}

		return nil, &integrator.ProviderAPIError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

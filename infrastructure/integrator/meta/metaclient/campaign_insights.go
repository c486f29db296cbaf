package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metadomain"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

type ResponseCampaigns struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

type ResponseInsights struct {
	Data   []metadomain.InsightRow `json:"data"`
	Paging metadomain.Paging       `json:"paging"`
}

// FetchDailyCampaignMetrics busca o relatório diário por campanha no período
// (inclusivo): lista as campanhas da conta e consulta os insights de cada uma
// com time_increment=1. Campanhas pausadas entram na listagem porque podem ter
// veiculado dentro do período consultado
func (c *MetaClient) FetchDailyCampaignMetrics(accountID, accessToken, dateStart, dateEnd string) ([]domain.CampaignMetric, error) {
	campaigns, err := c.listCampaigns(accountID, accessToken)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.CampaignMetric, 0, len(campaigns))
	for _, campaign := range campaigns {
		rows, err := c.campaignInsights(campaign.ID, accessToken, dateStart, dateEnd)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			metrics = append(metrics, metadomain.FactoryCampaignMetric(row))
		}
	}

	return metrics, nil
}

func (c *MetaClient) listCampaigns(accountID, accessToken string) ([]metadomain.Campaign, error) {
	baseURL := fmt.Sprintf("%s/%s/campaigns", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,effective_status")
	params.Add("effective_status", "[\"ACTIVE\",\"PAUSED\"]")
	params.Add("limit", "100")
	params.Add("access_token", accessToken)

	body, err := c.doGet(baseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	var response ResponseCampaigns
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("meta: erro ao decodificar lista de campanhas")
		return nil, err
	}

	return response.Data, nil
}

func (c *MetaClient) campaignInsights(campaignID, accessToken, dateStart, dateEnd string) ([]metadomain.InsightRow, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, campaignID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", dateStart, dateEnd)

	params := url.Values{}
	params.Add("fields", "campaign_id,campaign_name,spend,impressions,clicks,ctr,actions,action_values")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("limit", "90")
	params.Add("access_token", accessToken)

	body, err := c.doGet(baseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	var response ResponseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("meta: erro ao decodificar JSON dos insights")
		return nil, err
	}

	return response.Data, nil
}

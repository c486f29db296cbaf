package googledomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

// TokenResponse representa a resposta do endpoint OAuth do Google
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SearchResponse é a resposta do endpoint googleAds:search
type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

// SearchRow é uma linha do relatório: uma campanha em um dia
type SearchRow struct {
	Campaign Campaign `json:"campaign"`
	Metrics  Metrics  `json:"metrics"`
	Segments Segments `json:"segments"`
}

type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Metrics traz os campos de métricas do relatório. A API REST serializa os
// campos int64 do proto como strings JSON
type Metrics struct {
	CostMicros       string  `json:"costMicros"`
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
	CTR              float64 `json:"ctr"`
}

type Segments struct {
	Date string `json:"date"`
}

// ListAccessibleCustomersResponse é a resposta de customers:listAccessibleCustomers
type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// FactoryCampaignMetric converte uma linha bruta do relatório no registro
// canônico. Campos ausentes ou malformados viram zero - a política de default
// fica centralizada aqui. O custo chega em micros e é dividido por 1.000.000
func FactoryCampaignMetric(row SearchRow) domain.CampaignMetric {
	costMicros := parseInt64(row.Metrics.CostMicros, "cost_micros")
	impressions := parseInt64(row.Metrics.Impressions, "impressions")
	clicks := parseInt64(row.Metrics.Clicks, "clicks")

	metric := domain.CampaignMetric{
		Platform:        domain.PlatformGoogle,
		CampaignID:      row.Campaign.ID,
		CampaignName:    row.Campaign.Name,
		Date:            row.Segments.Date,
		Spend:           float64(costMicros) / 1_000_000,
		Impressions:     impressions,
		Clicks:          clicks,
		Conversions:     row.Metrics.Conversions,
		ConversionValue: row.Metrics.ConversionsValue,
		CTR:             row.Metrics.CTR, // já é fração no relatório do Google
	}

	metric.DeriveRatios()

	return metric
}

func parseInt64(value, field string) int64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("googleads: erro ao converter campo numérico do relatório")
		return 0
	}

	return parsed
}

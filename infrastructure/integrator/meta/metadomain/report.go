package metadomain

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ErrorEnvelope é o envelope de erro padrão da Graph API
type ErrorEnvelope struct {
	Error *GraphError `json:"error"`
}

type GraphError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}

type Paging struct {
	Next string `json:"next"`
}

// AdAccount é uma conta de anúncio retornada por /me/adaccounts.
// O ID chega com o prefixo act_
type AdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
}

// Campaign é uma campanha retornada por /{account_id}/campaigns
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	EffectiveStatus string `json:"effective_status"`
}

// Action é um evento de conversão agregado pelo tipo. Os valores numéricos
// chegam como strings JSON
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de /insights com time_increment=1: uma campanha em um dia
type InsightRow struct {
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}

// conversionAction decide se um action_type conta como conversão. A lista de
// actions do Meta mistura cliques, visualizações e conversões de fato - só os
// eventos de conversão offsite e leads entram na soma
func conversionAction(actionType string) bool {
	return strings.HasPrefix(actionType, "offsite_conversion") || actionType == "lead"
}

// FactoryCampaignMetric converte uma linha bruta de insights no registro
// canônico. Campos ausentes ou malformados viram zero. O CTR do Meta vem em
// percentual e é dividido por 100 para virar fração
func FactoryCampaignMetric(row InsightRow) domain.CampaignMetric {
	var conversions float64
	for _, action := range row.Actions {
		if conversionAction(action.ActionType) {
			conversions += parseFloat(action.Value, "actions."+action.ActionType)
		}
	}

	var conversionValue float64
	for _, action := range row.ActionValues {
		if strings.HasPrefix(action.ActionType, "offsite_conversion") {
			conversionValue += parseFloat(action.Value, "action_values."+action.ActionType)
		}
	}

	metric := domain.CampaignMetric{
		Platform:        domain.PlatformMeta,
		CampaignID:      row.CampaignID,
		CampaignName:    row.CampaignName,
		Date:            row.DateStart,
		Spend:           parseFloat(row.Spend, "spend"),
		Impressions:     int64(parseFloat(row.Impressions, "impressions")),
		Clicks:          int64(parseFloat(row.Clicks, "clicks")),
		Conversions:     conversions,
		ConversionValue: conversionValue,
		CTR:             parseFloat(row.CTR, "ctr") / 100,
	}

	metric.DeriveRatios()

	return metric
}

func parseFloat(value, field string) float64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: erro ao converter campo numérico do relatório")
		return 0
	}

	return parsed
}

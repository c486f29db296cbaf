package domain

import (
	"time"
)

// MetricSummary agrega um período inteiro. Os índices derivados são sempre
// recalculados a partir dos totais somados, nunca como média dos índices por
// linha (evita viés ao misturar campanhas de tamanhos diferentes)
type MetricSummary struct {
	Spend           float64 `json:"spend"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	ROAS            float64 `json:"roas"`
	CTR             float64 `json:"ctr"`
	CPC             float64 `json:"cpc"`
	CPL             float64 `json:"cpl"`
}

// DailyMetric é um ponto da série diária do dashboard
type DailyMetric struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	Clicks      int64   `json:"clicks"`
	ROAS        float64 `json:"roas"`
}

// CampaignRollup agrega todas as linhas de uma campanha no período
type CampaignRollup struct {
	CampaignID      string   `json:"campaign_id"`
	CampaignName    string   `json:"campaign_name"`
	Platform        Platform `json:"platform"`
	Spend           float64  `json:"spend"`
	Impressions     int64    `json:"impressions"`
	Clicks          int64    `json:"clicks"`
	Conversions     float64  `json:"conversions"`
	ConversionValue float64  `json:"conversion_value"`
	ROAS            float64  `json:"roas"`
	CPL             float64  `json:"cpl"`
	CTR             float64  `json:"ctr"`
}

// MetricDeltas contém a variação percentual do período atual contra o anterior
type MetricDeltas struct {
	Spend           float64 `json:"spend"`
	Impressions     float64 `json:"impressions"`
	Clicks          float64 `json:"clicks"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	ROAS            float64 `json:"roas"`
	CPC             float64 `json:"cpc"`
}

// DashboardReport é o view model completo do dashboard de um cliente
type DashboardReport struct {
	ClientName   string           `json:"client_name"`
	ClientSlug   string           `json:"client_slug"`
	LogoURL      *string          `json:"logo_url,omitempty"`
	From         string           `json:"from"`
	To           string           `json:"to"`
	Current      MetricSummary    `json:"current"`
	Prior        MetricSummary    `json:"prior"`
	Deltas       MetricDeltas     `json:"deltas"`
	Trend        []DailyMetric    `json:"trend"`
	Campaigns    []CampaignRollup `json:"campaigns"`
	LastSyncedAt *time.Time       `json:"last_synced_at,omitempty"`
}

// ClientSyncResult é o resultado por cliente da sincronização em lote
type ClientSyncResult struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	Error      string `json:"error,omitempty"`
}

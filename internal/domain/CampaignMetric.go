package domain

// CampaignMetric é o registro canônico de métricas por (conta, campanha, dia).
// Unicidade: (ad_account_id, campaign_id, date) - uma nova sincronização do
// mesmo dia sobrescreve a linha (upsert idempotente)
type CampaignMetric struct {
	ID              string   `json:"id,omitempty"`
	ClientID        string   `json:"client_id"`
	AdAccountID     string   `json:"ad_account_id"`
	Platform        Platform `json:"platform"`
	CampaignID      string   `json:"campaign_id"`
	CampaignName    string   `json:"campaign_name"`
	Date            string   `json:"date"` // YYYY-MM-DD
	Spend           float64  `json:"spend"`
	Impressions     int64    `json:"impressions"`
	Clicks          int64    `json:"clicks"`
	Conversions     float64  `json:"conversions"`
	ConversionValue float64  `json:"conversion_value"`
	ROAS            float64  `json:"roas"`
	CTR             float64  `json:"ctr"` // fração, não percentual
	CPC             float64  `json:"cpc"`
	CPM             float64  `json:"cpm"`
}

// DeriveRatios calcula roas/cpc/cpm a partir dos campos brutos, com proteção
// contra divisão por zero. CTR não é recalculado: cada plataforma já entrega o
// valor corrigido para fração na normalização
func (m *CampaignMetric) DeriveRatios() {
	m.ROAS = 0
	if m.Spend > 0 {
		m.ROAS = m.ConversionValue / m.Spend
	}

	m.CPC = 0
	if m.Clicks > 0 {
		m.CPC = m.Spend / float64(m.Clicks)
	}

	m.CPM = 0
	if m.Impressions > 0 {
		m.CPM = (m.Spend / float64(m.Impressions)) * 1000
	}
}

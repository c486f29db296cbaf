package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		metrics  []*domain.CampaignMetric
		validate func(t *testing.T, summary domain.MetricSummary)
	}{
		{
			name: "Duas linhas - índices recalculados a partir dos totais",
			metrics: []*domain.CampaignMetric{
				{Spend: 100, ConversionValue: 300, Impressions: 1000, Clicks: 50, Conversions: 5},
				{Spend: 50, ConversionValue: 0, Impressions: 500, Clicks: 25, Conversions: 0},
			},
			validate: func(t *testing.T, summary domain.MetricSummary) {
				assert.Equal(t, 150.0, summary.Spend)
				assert.Equal(t, 300.0, summary.ConversionValue)
				assert.Equal(t, 2.0, summary.ROAS)
				assert.Equal(t, 0.05, summary.CTR)
				assert.Equal(t, 2.0, summary.CPC)
				assert.Equal(t, 30.0, summary.CPL)
			},
		},
		{
			name:    "Período sem dados - tudo zerado sem divisão por zero",
			metrics: []*domain.CampaignMetric{},
			validate: func(t *testing.T, summary domain.MetricSummary) {
				assert.Equal(t, 0.0, summary.Spend)
				assert.Equal(t, 0.0, summary.ROAS)
				assert.Equal(t, 0.0, summary.CTR)
				assert.Equal(t, 0.0, summary.CPC)
				assert.Equal(t, 0.0, summary.CPL)
			},
		},
		{
			name: "Investimento zero com receita - roas zerado",
			metrics: []*domain.CampaignMetric{
				{Spend: 0, ConversionValue: 100},
			},
			validate: func(t *testing.T, summary domain.MetricSummary) {
				assert.Equal(t, 0.0, summary.ROAS)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.metrics)

			tt.validate(t, summary)
		})
	}
}

func TestCalcDelta(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{
			name:     "Período anterior zerado com atividade atual - delta 100",
			current:  50,
			prior:    0,
			expected: 100,
		},
		{
			name:     "Ambos os períodos zerados - delta zero",
			current:  0,
			prior:    0,
			expected: 0,
		},
		{
			name:     "Queda de 100 para 80 - delta -20",
			current:  80,
			prior:    100,
			expected: -20,
		},
		{
			name:     "Crescimento de 100 para 150 - delta 50",
			current:  150,
			prior:    100,
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalcDelta(tt.current, tt.prior))
		})
	}
}

func TestDailyTrend(t *testing.T) {
	metrics := []*domain.CampaignMetric{
		{Date: "2024-05-12", Spend: 30, ConversionValue: 60, Clicks: 10},
		{Date: "2024-05-10", Spend: 10, ConversionValue: 20, Clicks: 5},
		{Date: "2024-05-11", Spend: 20, ConversionValue: 0, Clicks: 8},
		{Date: "2024-05-10", Spend: 5, ConversionValue: 10, Clicks: 2},
	}

	trend := DailyTrend(metrics)

	assert.Len(t, trend, 3)

	// Série ordenada em ordem crescente de data
	assert.Equal(t, "2024-05-10", trend[0].Date)
	assert.Equal(t, "2024-05-11", trend[1].Date)
	assert.Equal(t, "2024-05-12", trend[2].Date)

	// Linhas do mesmo dia agregadas em um único ponto
	assert.Equal(t, 15.0, trend[0].Spend)
	assert.Equal(t, int64(7), trend[0].Clicks)
	assert.Equal(t, 2.0, trend[0].ROAS)

	assert.Equal(t, 0.0, trend[1].ROAS)
}

func TestRollupCampaigns(t *testing.T) {
	metrics := []*domain.CampaignMetric{
		{Platform: domain.PlatformGoogle, CampaignID: "a", CampaignName: "Campanha A", Date: "2024-05-10", Spend: 10},
		{Platform: domain.PlatformMeta, CampaignID: "b", CampaignName: "Campanha B", Date: "2024-05-10", Spend: 50, Conversions: 5},
		{Platform: domain.PlatformGoogle, CampaignID: "c", CampaignName: "Campanha C", Date: "2024-05-10", Spend: 20},
		{Platform: domain.PlatformGoogle, CampaignID: "c", CampaignName: "Campanha C", Date: "2024-05-11", Spend: 10},
	}

	rollups := RollupCampaigns(metrics)

	assert.Len(t, rollups, 3)

	// Ordenação por investimento decrescente
	assert.Equal(t, 50.0, rollups[0].Spend)
	assert.Equal(t, 30.0, rollups[1].Spend)
	assert.Equal(t, 10.0, rollups[2].Spend)

	assert.Equal(t, "b", rollups[0].CampaignID)
	assert.Equal(t, "c", rollups[1].CampaignID)
	assert.Equal(t, "a", rollups[2].CampaignID)

	assert.Equal(t, 10.0, rollups[0].CPL)
}

func TestCalcDeltas(t *testing.T) {
	current := domain.MetricSummary{Spend: 80, Clicks: 100, ROAS: 2.0}
	prior := domain.MetricSummary{Spend: 100, Clicks: 0, ROAS: 2.0}

	deltas := CalcDeltas(current, prior)

	assert.Equal(t, -20.0, deltas.Spend)
	assert.Equal(t, 100.0, deltas.Clicks)
	assert.Equal(t, 0.0, deltas.ROAS)
}

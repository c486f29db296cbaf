package googledomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

func TestFactoryCampaignMetric(t *testing.T) {
	tests := []struct {
		name     string
		row      SearchRow
		expected domain.CampaignMetric
	}{
		{
			name: "Linha completa - custo em micros convertido para reais",
			row: SearchRow{
				Campaign: Campaign{ID: "123456", Name: "Campanha Institucional"},
				Segments: Segments{Date: "2024-05-10"},
				Metrics: Metrics{
					CostMicros:       "2500000",
					Impressions:      "1000",
					Clicks:           "50",
					Conversions:      4,
					ConversionsValue: 10.0,
					CTR:              0.05,
				},
			},
			expected: domain.CampaignMetric{
				Platform:        domain.PlatformGoogle,
				CampaignID:      "123456",
				CampaignName:    "Campanha Institucional",
				Date:            "2024-05-10",
				Spend:           2.5,
				Impressions:     1000,
				Clicks:          50,
				Conversions:     4,
				ConversionValue: 10.0,
				CTR:             0.05,
				ROAS:            4.0,
				CPC:             0.05,
				CPM:             2.5,
			},
		},
		{
			name: "Campos numéricos malformados - viram zero sem falhar",
			row: SearchRow{
				Campaign: Campaign{ID: "789", Name: "Campanha Teste"},
				Segments: Segments{Date: "2024-05-11"},
				Metrics: Metrics{
					CostMicros:  "abc",
					Impressions: "",
					Clicks:      "10",
				},
			},
			expected: domain.CampaignMetric{
				Platform:     domain.PlatformGoogle,
				CampaignID:   "789",
				CampaignName: "Campanha Teste",
				Date:         "2024-05-11",
				Spend:        0,
				Impressions:  0,
				Clicks:       10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FactoryCampaignMetric(tt.row)

			assert.Equal(t, tt.expected, result)
		})
	}
}

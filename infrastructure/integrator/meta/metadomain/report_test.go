package metadomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/client-reporting-api/internal/domain"
)

func TestFactoryCampaignMetric(t *testing.T) {
	tests := []struct {
		name     string
		row      InsightRow
		validate func(t *testing.T, result domain.CampaignMetric)
	}{
		{
			name: "Actions mistas - só conversões offsite e leads entram na soma",
			row: InsightRow{
				CampaignID:   "c1",
				CampaignName: "Campanha Leads",
				DateStart:    "2024-05-10",
				Spend:        "100.50",
				Impressions:  "2000",
				Clicks:       "80",
				CTR:          "4",
				Actions: []Action{
					{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "2"},
					{ActionType: "lead", Value: "1"},
					{ActionType: "link_click", Value: "10"},
					{ActionType: "video_view", Value: "500"},
				},
				ActionValues: []Action{
					{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "250.75"},
					{ActionType: "link_click", Value: "30"},
				},
			},
			validate: func(t *testing.T, result domain.CampaignMetric) {
				assert.Equal(t, domain.PlatformMeta, result.Platform)
				assert.Equal(t, 3.0, result.Conversions)
				assert.Equal(t, 250.75, result.ConversionValue)
				assert.Equal(t, 100.50, result.Spend)
				assert.Equal(t, int64(2000), result.Impressions)
				assert.Equal(t, int64(80), result.Clicks)
			},
		},
		{
			name: "CTR em percentual - convertido para fração",
			row: InsightRow{
				CampaignID: "c2",
				DateStart:  "2024-05-11",
				CTR:        "5",
			},
			validate: func(t *testing.T, result domain.CampaignMetric) {
				assert.Equal(t, 0.05, result.CTR)
			},
		},
		{
			name: "Sem actions - conversões zeradas",
			row: InsightRow{
				CampaignID:  "c3",
				DateStart:   "2024-05-12",
				Spend:       "10",
				Impressions: "100",
			},
			validate: func(t *testing.T, result domain.CampaignMetric) {
				assert.Equal(t, 0.0, result.Conversions)
				assert.Equal(t, 0.0, result.ConversionValue)
				assert.Equal(t, 0.0, result.ROAS)
			},
		},
		{
			name: "Valores malformados - viram zero sem falhar",
			row: InsightRow{
				CampaignID: "c4",
				DateStart:  "2024-05-13",
				Spend:      "not-a-number",
				Actions: []Action{
					{ActionType: "lead", Value: "xyz"},
				},
			},
			validate: func(t *testing.T, result domain.CampaignMetric) {
				assert.Equal(t, 0.0, result.Spend)
				assert.Equal(t, 0.0, result.Conversions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FactoryCampaignMetric(tt.row)

			tt.validate(t, result)
		})
	}
}

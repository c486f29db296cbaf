package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/client-reporting-api/infrastructure/repository/mocks"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestBuildDashboardReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	metricRepo := repomocks.NewMockCampaignMetricRepository(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewService(clientRepo, metricRepo, syncLogRepo)

	client := &domain.Client{ID: "cl1", Name: "Cliente Um", Slug: "cliente-um"}

	tests := []struct {
		name     string
		from     string
		to       string
		setup    func()
		validate func(t *testing.T, report *domain.DashboardReport, err error)
	}{
		{
			name: "Período de 7 dias - período anterior calculado com a mesma duração",
			from: "2024-05-08",
			to:   "2024-05-14",
			setup: func() {
				clientRepo.EXPECT().GetByID("cl1").Return(client, nil)

				current := []*domain.CampaignMetric{
					{Date: "2024-05-10", Spend: 100, ConversionValue: 300},
				}
				prior := []*domain.CampaignMetric{
					{Date: "2024-05-03", Spend: 50, ConversionValue: 50},
				}

				metricRepo.EXPECT().ListByClientIDAndDateRange("cl1", "2024-05-08", "2024-05-14").Return(current, nil)
				// Mesma duração, terminando no dia anterior ao início
				metricRepo.EXPECT().ListByClientIDAndDateRange("cl1", "2024-05-01", "2024-05-07").Return(prior, nil)

				syncLogRepo.EXPECT().LatestSuccessByClientID("cl1").Return(nil, nil)
			},
			validate: func(t *testing.T, report *domain.DashboardReport, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Cliente Um", report.ClientName)
				assert.Equal(t, 100.0, report.Current.Spend)
				assert.Equal(t, 50.0, report.Prior.Spend)
				assert.Equal(t, 100.0, report.Deltas.Spend)
				assert.Nil(t, report.LastSyncedAt)
			},
		},
		{
			name: "Data final anterior à inicial - período inválido",
			from: "2024-05-14",
			to:   "2024-05-08",
			setup: func() {
				clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
			},
			validate: func(t *testing.T, report *domain.DashboardReport, err error) {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
				assert.Nil(t, report)
			},
		},
		{
			name: "Cliente inexistente - erro específico",
			from: "2024-05-08",
			to:   "2024-05-14",
			setup: func() {
				clientRepo.EXPECT().GetByID("cl1").Return(nil, nil)
			},
			validate: func(t *testing.T, report *domain.DashboardReport, err error) {
				assert.ErrorIs(t, err, ErrClientNotFound)
			},
		},
		{
			name: "Data malformada - erro de validação",
			from: "10/05/2024",
			to:   "2024-05-14",
			setup: func() {
				clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
			},
			validate: func(t *testing.T, report *domain.DashboardReport, err error) {
				assert.Error(t, err)
				assert.Nil(t, report)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			report, err := service.BuildDashboardReport("cl1", tt.from, tt.to)

			tt.validate(t, report, err)
		})
	}
}

func TestExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	metricRepo := repomocks.NewMockCampaignMetricRepository(ctrl)
	syncLogRepo := repomocks.NewMockSyncLogRepository(ctrl)

	service := NewService(clientRepo, metricRepo, syncLogRepo)

	client := &domain.Client{ID: "cl1", Name: "Cliente Um"}

	clientRepo.EXPECT().GetByID("cl1").Return(client, nil)
	metricRepo.EXPECT().ListByClientIDAndDateRange("cl1", "2024-05-01", "2024-05-31").Return([]*domain.CampaignMetric{
		{
			Date:         "2024-05-10",
			Platform:     domain.PlatformGoogle,
			CampaignID:   "camp1",
			CampaignName: "Campanha A",
			Spend:        2.5,
			Impressions:  1000,
			Clicks:       50,
		},
	}, nil)

	data, err := service.ExportCSV("cl1", "2024-05-01", "2024-05-31")

	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "date,platform,campaign_id,campaign_name,spend,impressions,clicks,conversions,conversion_value,roas,ctr,cpc,cpm", lines[0])
	assert.Equal(t, "2024-05-10,google,camp1,Campanha A,2.5,1000,50,0,0,0,0,0,0", lines[1])
}

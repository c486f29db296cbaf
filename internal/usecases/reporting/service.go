package reporting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/vfg2006/client-reporting-api/infrastructure/repository"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

var (
	ErrInvalidDateRange = errors.New("período inválido: from deve ser anterior ou igual a to")
	ErrClientNotFound   = errors.New("cliente não encontrado")
)

// Reporter monta os relatórios do dashboard de um cliente
type Reporter interface {
	BuildDashboardReport(clientID, from, to string) (*domain.DashboardReport, error)
	ExportCSV(clientID, from, to string) ([]byte, error)
}

type Service struct {
	clientRepo  repository.ClientRepository
	metricRepo  repository.CampaignMetricRepository
	syncLogRepo repository.SyncLogRepository
}

func NewService(
	clientRepo repository.ClientRepository,
	metricRepo repository.CampaignMetricRepository,
	syncLogRepo repository.SyncLogRepository,
) Reporter {
	return &Service{
		clientRepo:  clientRepo,
		metricRepo:  metricRepo,
		syncLogRepo: syncLogRepo,
	}
}

// BuildDashboardReport monta o view model completo do dashboard: totais do
// período, comparação com o período anterior de mesma duração, série diária e
// quebra por campanha
func (s *Service) BuildDashboardReport(clientID, from, to string) (*domain.DashboardReport, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	fromDate, err := utils.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}

	toDate, err := utils.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}

	if toDate.Before(*fromDate) {
		return nil, ErrInvalidDateRange
	}

	current, err := s.metricRepo.ListByClientIDAndDateRange(client.ID, from, to)
	if err != nil {
		return nil, err
	}

	// Período anterior: mesma duração, terminando no dia anterior ao início
	// do período atual
	periodDays := int(toDate.Sub(*fromDate).Hours()/24) + 1
	priorEnd := fromDate.AddDate(0, 0, -1)
	priorStart := priorEnd.AddDate(0, 0, -(periodDays - 1))

	prior, err := s.metricRepo.ListByClientIDAndDateRange(client.ID, utils.FormatDate(priorStart), utils.FormatDate(priorEnd))
	if err != nil {
		return nil, err
	}

	currentSummary := Summarize(current)
	priorSummary := Summarize(prior)

	report := &domain.DashboardReport{
		ClientName: client.Name,
		ClientSlug: client.Slug,
		LogoURL:    client.LogoURL,
		From:       from,
		To:         to,
		Current:    currentSummary,
		Prior:      priorSummary,
		Deltas:     CalcDeltas(currentSummary, priorSummary),
		Trend:      DailyTrend(current),
		Campaigns:  RollupCampaigns(current),
	}

	lastSync, err := s.syncLogRepo.LatestSuccessByClientID(client.ID)
	if err != nil {
		return nil, err
	}
	if lastSync != nil {
		report.LastSyncedAt = lastSync.CompletedAt
	}

	return report, nil
}

// ExportCSV exporta as linhas de métricas do período em CSV, uma linha por
// (campanha, dia)
func (s *Service) ExportCSV(clientID, from, to string) ([]byte, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	metrics, err := s.metricRepo.ListByClientIDAndDateRange(client.ID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"date", "platform", "campaign_id", "campaign_name", "spend", "impressions", "clicks", "conversions", "conversion_value", "roas", "ctr", "cpc", "cpm"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, metric := range metrics {
		record := []string{
			metric.Date,
			string(metric.Platform),
			metric.CampaignID,
			metric.CampaignName,
			formatFloat(metric.Spend),
			strconv.FormatInt(metric.Impressions, 10),
			strconv.FormatInt(metric.Clicks, 10),
			formatFloat(metric.Conversions),
			formatFloat(metric.ConversionValue),
			formatFloat(metric.ROAS),
			formatFloat(metric.CTR),
			formatFloat(metric.CPC),
			formatFloat(metric.CPM),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

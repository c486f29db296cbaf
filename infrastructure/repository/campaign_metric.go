package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/client-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

const (
	campaignMetricsTable = "campaign_metrics cm"

	// upsertBatchSize limita o número de linhas por INSERT para não estourar o
	// limite de parâmetros do Postgres
	upsertBatchSize = 100
)

type CampaignMetricRepository interface {
	UpsertBatch(metrics []domain.CampaignMetric) error
	ListByClientIDAndDateRange(clientID, dateStart, dateEnd string) ([]*domain.CampaignMetric, error)
}

type campaignMetricRepository struct {
	conn *postgres.Connection
}

func NewCampaignMetricRepository(conn *postgres.Connection) CampaignMetricRepository {
	return &campaignMetricRepository{
		conn: conn,
	}
}

// UpsertBatch grava as métricas em lotes. O conflito em
// (ad_account_id, campaign_id, date) sobrescreve a linha existente: repetir a
// sincronização do mesmo período é idempotente
func (r *campaignMetricRepository) UpsertBatch(metrics []domain.CampaignMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	for start := 0; start < len(metrics); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(metrics) {
			end = len(metrics)
		}

		if err := r.upsertChunk(metrics[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *campaignMetricRepository) upsertChunk(metrics []domain.CampaignMetric) error {
	query := squirrel.StatementBuilder.
		Insert("campaign_metrics").
		Columns(
			"id", "client_id", "ad_account_id", "platform", "campaign_id", "campaign_name",
			"date", "spend", "impressions", "clicks", "conversions", "conversion_value",
			"roas", "ctr", "cpc", "cpm",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, metric := range metrics {
		id := metric.ID
		if id == "" {
			generated, err := utils.GenerateID()
			if err != nil {
				return fmt.Errorf("erro ao gerar identificador da métrica: %w", err)
			}
			id = generated
		}

		query = query.Values(
			id,
			metric.ClientID,
			metric.AdAccountID,
			metric.Platform,
			metric.CampaignID,
			metric.CampaignName,
			metric.Date,
			metric.Spend,
			metric.Impressions,
			metric.Clicks,
			metric.Conversions,
			metric.ConversionValue,
			metric.ROAS,
			metric.CTR,
			metric.CPC,
			metric.CPM,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (ad_account_id, campaign_id, date) DO UPDATE SET
			campaign_name = EXCLUDED.campaign_name,
			spend = EXCLUDED.spend,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions,
			conversion_value = EXCLUDED.conversion_value,
			roas = EXCLUDED.roas,
			ctr = EXCLUDED.ctr,
			cpc = EXCLUDED.cpc,
			cpm = EXCLUDED.cpm,
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignMetricRepository) ListByClientIDAndDateRange(clientID, dateStart, dateEnd string) ([]*domain.CampaignMetric, error) {
	query, args, err := squirrel.
		Select(
			"cm.id, cm.client_id, cm.ad_account_id, cm.platform, cm.campaign_id, cm.campaign_name, "+
				"cm.date::text, cm.spend, cm.impressions, cm.clicks, cm.conversions, cm.conversion_value, "+
				"cm.roas, cm.ctr, cm.cpc, cm.cpm",
		).
		From(campaignMetricsTable).
		Where(squirrel.Eq{"cm.client_id": clientID}).
		Where(squirrel.GtOrEq{"cm.date": dateStart}).
		Where(squirrel.LtOrEq{"cm.date": dateEnd}).
		OrderBy("cm.date ASC, cm.campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.CampaignMetric, 0)
	for rows.Next() {
		metric := &domain.CampaignMetric{}
		if err := rows.Scan(
			&metric.ID,
			&metric.ClientID,
			&metric.AdAccountID,
			&metric.Platform,
			&metric.CampaignID,
			&metric.CampaignName,
			&metric.Date,
			&metric.Spend,
			&metric.Impressions,
			&metric.Clicks,
			&metric.Conversions,
			&metric.ConversionValue,
			&metric.ROAS,
			&metric.CTR,
			&metric.CPC,
			&metric.CPM,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

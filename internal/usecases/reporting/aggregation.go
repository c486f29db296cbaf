package reporting

import (
	"sort"

	"github.com/vfg2006/client-reporting-api/internal/domain"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

// Summarize agrega as linhas do período em totais únicos. Os índices derivados
// são sempre recalculados a partir dos totais somados, nunca como média dos
// índices por linha
func Summarize(metrics []*domain.CampaignMetric) domain.MetricSummary {
	summary := domain.MetricSummary{}

	for _, metric := range metrics {
		summary.Spend += metric.Spend
		summary.Impressions += metric.Impressions
		summary.Clicks += metric.Clicks
		summary.Conversions += metric.Conversions
		summary.ConversionValue += metric.ConversionValue
	}

	if summary.Spend > 0 {
		summary.ROAS = summary.ConversionValue / summary.Spend
	}
	if summary.Impressions > 0 {
		summary.CTR = float64(summary.Clicks) / float64(summary.Impressions)
	}
	if summary.Clicks > 0 {
		summary.CPC = summary.Spend / float64(summary.Clicks)
	}
	if summary.Conversions > 0 {
		summary.CPL = summary.Spend / summary.Conversions
	}

	return summary
}

// CalcDelta calcula a variação percentual do valor atual contra o anterior.
// Quando o período anterior é zero não existe base de comparação: a variação é
// 100 se houve qualquer atividade no período atual, zero caso contrário
func CalcDelta(current, prior float64) float64 {
	if prior == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return utils.RoundWithTwoDecimalPlace((current - prior) / prior * 100)
}

// CalcDeltas compara os dois períodos campo a campo
func CalcDeltas(current, prior domain.MetricSummary) domain.MetricDeltas {
	return domain.MetricDeltas{
		Spend:           CalcDelta(current.Spend, prior.Spend),
		Impressions:     CalcDelta(float64(current.Impressions), float64(prior.Impressions)),
		Clicks:          CalcDelta(float64(current.Clicks), float64(prior.Clicks)),
		Conversions:     CalcDelta(current.Conversions, prior.Conversions),
		ConversionValue: CalcDelta(current.ConversionValue, prior.ConversionValue),
		ROAS:            CalcDelta(current.ROAS, prior.ROAS),
		CPC:             CalcDelta(current.CPC, prior.CPC),
	}
}

// DailyTrend agrupa as linhas por dia e ordena a série em ordem crescente de
// data. Datas no formato YYYY-MM-DD ordenam corretamente como texto
func DailyTrend(metrics []*domain.CampaignMetric) []domain.DailyMetric {
	byDate := make(map[string]*domain.DailyMetric)
	totals := make(map[string]*struct{ spend, value float64 })

	for _, metric := range metrics {
		point, exists := byDate[metric.Date]
		if !exists {
			point = &domain.DailyMetric{Date: metric.Date}
			byDate[metric.Date] = point
			totals[metric.Date] = &struct{ spend, value float64 }{}
		}

		point.Spend += metric.Spend
		point.Conversions += metric.Conversions
		point.Clicks += metric.Clicks

		totals[metric.Date].spend += metric.Spend
		totals[metric.Date].value += metric.ConversionValue
	}

	trend := make([]domain.DailyMetric, 0, len(byDate))
	for date, point := range byDate {
		if totals[date].spend > 0 {
			point.ROAS = totals[date].value / totals[date].spend
		}
		trend = append(trend, *point)
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})

	return trend
}

// RollupCampaigns agrega todas as linhas de cada campanha no período e ordena
// por investimento decrescente
func RollupCampaigns(metrics []*domain.CampaignMetric) []domain.CampaignRollup {
	byCampaign := make(map[string]*domain.CampaignRollup)
	order := make([]string, 0)

	for _, metric := range metrics {
		key := string(metric.Platform) + ":" + metric.CampaignID

		rollup, exists := byCampaign[key]
		if !exists {
			rollup = &domain.CampaignRollup{
				CampaignID:   metric.CampaignID,
				CampaignName: metric.CampaignName,
				Platform:     metric.Platform,
			}
			byCampaign[key] = rollup
			order = append(order, key)
		}

		rollup.Spend += metric.Spend
		rollup.Impressions += metric.Impressions
		rollup.Clicks += metric.Clicks
		rollup.Conversions += metric.Conversions
		rollup.ConversionValue += metric.ConversionValue
	}

	rollups := make([]domain.CampaignRollup, 0, len(order))
	for _, key := range order {
		rollup := byCampaign[key]

		if rollup.Spend > 0 {
			rollup.ROAS = rollup.ConversionValue / rollup.Spend
		}
		if rollup.Conversions > 0 {
			rollup.CPL = rollup.Spend / rollup.Conversions
		}
		if rollup.Impressions > 0 {
			rollup.CTR = float64(rollup.Clicks) / float64(rollup.Impressions)
		}

		rollups = append(rollups, *rollup)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Spend > rollups[j].Spend
	})

	return rollups
}

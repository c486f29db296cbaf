package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/internal/usecases/reporting"
	"github.com/vfg2006/client-reporting-api/pkg/apiErrors"
	"github.com/vfg2006/client-reporting-api/pkg/middleware"
	"github.com/vfg2006/client-reporting-api/pkg/utils"
)

// dashboardPeriod resolve o período da query string. Sem parâmetros, o
// dashboard mostra os últimos 30 dias
func dashboardPeriod(r *http.Request) (string, string) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		today := time.Now()
		return utils.FormatDate(today.AddDate(0, 0, -30)), utils.FormatDate(today)
	}

	return from, to
}

// GetDashboard monta o relatório do cliente autenticado pelo token de dashboard
func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := middleware.ClientFromContext(r.Context())
		if client == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDashboardToken, "Cliente não autenticado", nil)
			return
		}

		from, to := dashboardPeriod(r)

		report, err := service.BuildDashboardReport(client.ID, from, to)
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// ExportDashboardCSV exporta as métricas do período em CSV
func ExportDashboardCSV(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := middleware.ClientFromContext(r.Context())
		if client == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDashboardToken, "Cliente não autenticado", nil)
			return
		}

		from, to := dashboardPeriod(r)

		data, err := service.ExportCSV(client.ID, from, to)
		if err != nil {
			handleReportError(w, err)
			return
		}

		filename := fmt.Sprintf("%s_%s_%s.csv", client.Slug, from, to)

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(data); err != nil {
			logrus.WithError(err).Warn("Erro ao enviar CSV")
		}
	}
}

func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
	case errors.Is(err, reporting.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período inválido", nil)
	default:
		logrus.WithError(err).Error("Erro ao montar relatório do dashboard")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório", nil)
	}
}

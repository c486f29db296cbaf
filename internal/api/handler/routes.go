package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/client-reporting-api/internal/api/handler/router"
	"github.com/vfg2006/client-reporting-api/internal/scheduler"
	"github.com/vfg2006/client-reporting-api/internal/usecases/authenticating"
	"github.com/vfg2006/client-reporting-api/internal/usecases/clientmgmt"
	"github.com/vfg2006/client-reporting-api/internal/usecases/reporting"
	"github.com/vfg2006/client-reporting-api/internal/usecases/syncing"
	"github.com/vfg2006/client-reporting-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Metrics expõe as métricas Prometheus do processo
func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/admin/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

// Clients retorna as rotas de gerenciamento de clientes, restritas ao operador
func Clients(service clientmgmt.ClientManager, authenticator authenticating.Authenticator) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminAuth(authenticator)}

	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients/:id/rotate-token",
			Method:      http.MethodPost,
			Handler:     RotateDashboardToken(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients/:id/accounts",
			Method:      http.MethodGet,
			Handler:     ListClientAccounts(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/clients/:id/sync-logs",
			Method:      http.MethodGet,
			Handler:     ListClientSyncLogs(service),
			Middlewares: adminOnly,
		},
	}
}

// OAuth retorna as rotas de callback do consentimento das plataformas. Os
// redirects chegam sem sessão do operador: a vinculação é protegida pelo
// authorization code de uso único
func OAuth(service clientmgmt.ClientManager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/auth/google/callback",
			Method:  http.MethodGet,
			Handler: GoogleOAuthCallback(service),
		},
		{
			Path:    "/v1/auth/meta/callback",
			Method:  http.MethodGet,
			Handler: MetaOAuthCallback(service),
		},
	}
}

// Sync retorna as rotas de disparo e acompanhamento de sincronizações
func Sync(service syncing.Syncer, syncScheduler *scheduler.DailySyncService, authenticator authenticating.Authenticator) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminAuth(authenticator)}

	return []router.Route{
		{
			Path:        "/v1/clients/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncClient(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     TriggerBatchSync(syncScheduler),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(syncScheduler),
			Middlewares: adminOnly,
		},
	}
}

// Dashboard retorna as rotas públicas do dashboard, autenticadas pelo token de
// capability do cliente
func Dashboard(service reporting.Reporter, resolver middleware.DashboardTokenResolver) []router.Route {
	dashboardAuth := []func(http.Handler) http.Handler{middleware.DashboardAuth(resolver)}

	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: dashboardAuth,
		},
		{
			Path:        "/v1/dashboard/export.csv",
			Method:      http.MethodGet,
			Handler:     ExportDashboardCSV(service),
			Middlewares: dashboardAuth,
		},
	}
}

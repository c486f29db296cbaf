package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/database/postgres"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/googleads/googleclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/client-reporting-api/infrastructure/repository"
	"github.com/vfg2006/client-reporting-api/internal/api"
	"github.com/vfg2006/client-reporting-api/internal/config"
	"github.com/vfg2006/client-reporting-api/internal/scheduler"
	"github.com/vfg2006/client-reporting-api/internal/usecases/authenticating"
	"github.com/vfg2006/client-reporting-api/internal/usecases/clientmgmt"
	"github.com/vfg2006/client-reporting-api/internal/usecases/reporting"
	"github.com/vfg2006/client-reporting-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clientRepo := repository.NewClientRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)
	metricRepo := repository.NewCampaignMetricRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)

	googleClient := googleclient.NewClient(cfg)
	metaClient := metaclient.NewClient(cfg)

	authenticator := authenticating.NewService(cfg)
	clientService := clientmgmt.NewService(clientRepo, accountRepo, syncLogRepo, googleClient, metaClient)
	syncService := syncing.NewService(clientRepo, accountRepo, metricRepo, syncLogRepo, googleClient, metaClient)
	reportService := reporting.NewService(clientRepo, metricRepo, syncLogRepo)

	// Agendador da sincronização incremental diária
	dailySyncService := scheduler.NewDailySyncService(syncService, syncLogRepo, cfg)

	if err := dailySyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização diária")
	} else {
		logrus.Info("Agendador de sincronização diária iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		clientService,
		syncService,
		reportService,
		dailySyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/database/sqlite"
	"github.com/vfg2006/askadb-query-engine/infrastructure/repository"
	"github.com/vfg2006/askadb-query-engine/internal/api"
	"github.com/vfg2006/askadb-query-engine/internal/config"
	"github.com/vfg2006/askadb-query-engine/internal/scheduler"
	"github.com/vfg2006/askadb-query-engine/internal/usecases/querying"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := sqliteconn(ctx, cfg.Database)
	defer conn.Close()

	salesRepo := repository.NewSalesRepository(conn)
	if err := salesRepo.Bootstrap(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a tabela de vendas")
	}

	queryRepo := repository.NewQueryRepository(conn)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	queryService := querying.NewService(queryRepo, cfg, m)

	maintenanceService := scheduler.NewMaintenanceService(conn, cfg)
	if err := maintenanceService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de manutenção do banco")
	}

	server, err := api.New(cfg, queryService, salesRepo, maintenanceService, m)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// sqliteconn abre o banco e encerra o processo se não for possível usá-lo
func sqliteconn(ctx context.Context, dbConfig config.Database) *sqlite.Connection {
	conn, err := sqlite.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o banco SQLite")
	}

	logrus.WithField("path", conn.Path()).Info("Conexão com SQLite estabelecida com sucesso")
	return conn
}

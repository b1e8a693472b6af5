package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/repository"
	"github.com/vfg2006/askadb-query-engine/internal/api/handler"
	"github.com/vfg2006/askadb-query-engine/internal/api/handler/router"
	"github.com/vfg2006/askadb-query-engine/internal/config"
	"github.com/vfg2006/askadb-query-engine/internal/scheduler"
	"github.com/vfg2006/askadb-query-engine/internal/usecases/querying"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
	"github.com/vfg2006/askadb-query-engine/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// New monta o servidor HTTP. m e maintenanceService podem ser nil, e nesse
// caso as rotas correspondentes não são registradas.
func New(
	config *config.Config,
	queryService querying.QueryService,
	salesRepo repository.SalesRepository,
	maintenanceService *scheduler.MaintenanceService,
	m *metrics.Metrics,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, queryService, salesRepo, maintenanceService, m),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler devolve o roteador já envolvido pelos middlewares
func NewHandler(
	config *config.Config,
	queryService querying.QueryService,
	salesRepo repository.SalesRepository,
	maintenanceService *scheduler.MaintenanceService,
	m *metrics.Metrics,
) http.Handler {
	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(config.App.ServiceName)...),
		router.WithRoutes(handler.Queries(queryService)...),
		router.WithRoutes(handler.Schema(salesRepo)...),
	}

	if maintenanceService != nil {
		configs = append(configs, router.WithRoutes(handler.Maintenance(maintenanceService)...))
	}

	if m != nil {
		configs = append(configs, router.WithRoutes(handler.Metrics(m)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(m, rt.HasPath),
		middleware.Cors(),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}

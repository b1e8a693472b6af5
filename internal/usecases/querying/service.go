package querying

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/askadb-query-engine/infrastructure/repository"
	"github.com/vfg2006/askadb-query-engine/internal/config"
	"github.com/vfg2006/askadb-query-engine/internal/domain"
	"github.com/vfg2006/askadb-query-engine/pkg/log"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
	"github.com/vfg2006/askadb-query-engine/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type QueryService interface {
	Execute(ctx context.Context, query string) (*domain.QueryResult, error)
}

type Service struct {
	repo    repository.QueryRepository
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewService(repo repository.QueryRepository, cfg *config.Config, m *metrics.Metrics) QueryService {
	return &Service{
		repo:    repo,
		timeout: cfg.Query.Timeout,
		metrics: m,
	}
}

// Execute roda a consulta e aplica a regra de colunas: sem linhas, a lista de
// colunas volta vazia mesmo que o statement tenha colunas.
func (s *Service) Execute(ctx context.Context, query string) (*domain.QueryResult, error) {
	queryID := utils.GenerateQueryID()
	logger := log.ForContext(ctx).WithField("query_id", queryID)
	logger.Infof("Executando consulta: %s", query)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	startTime := time.Now()
	result, err := s.repo.Execute(ctx, query)
	elapsed := time.Since(startTime)

	if err != nil {
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)

		s.metrics.ObserveQuery(metrics.StatusError, 0, elapsed)
		if timedOut {
			logger.WithError(err).Warnf("Consulta interrompida após %s", s.timeout)
		} else {
			logger.WithError(err).Warn("Falha na execução da consulta")
		}
		return nil, &QueryError{Err: err, QueryID: queryID, TimedOut: timedOut}
	}

	if len(result.Rows) == 0 {
		result.Columns = []string{}
	}

	s.metrics.ObserveQuery(metrics.StatusSuccess, len(result.Rows), elapsed)
	logger.WithField("rows", len(result.Rows)).Infof("Consulta executada com sucesso, %d linhas retornadas", len(result.Rows))

	return result, nil
}

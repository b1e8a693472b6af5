// Package scheduler contém os serviços agendados que rodam junto com a API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/database/sqlite"
	"github.com/vfg2006/askadb-query-engine/internal/config"
)

type MaintenanceConfig struct {
	CronSchedule string
	Enabled      bool
}

// CheckpointResult é o retorno de PRAGMA wal_checkpoint
type CheckpointResult struct {
	Busy         int
	LogFrames    int
	Checkpointed int
}

// MaintenanceService roda PRAGMA optimize e um checkpoint do WAL no horário configurado
type MaintenanceService struct {
	scheduler       *gocron.Scheduler
	conn            sqlite.Queryer
	config          MaintenanceConfig
	running         bool
	mutex           sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastCheckpoint  CheckpointResult
	lastError       error
}

func NewMaintenanceService(conn sqlite.Queryer, cfg *config.Config) *MaintenanceService {
	maintenanceConfig := MaintenanceConfig{
		CronSchedule: cfg.Maintenance.CronSchedule,
		Enabled:      cfg.Maintenance.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": maintenanceConfig.CronSchedule,
		"enabled":       maintenanceConfig.Enabled,
	}).Info("Configuração do agendador de manutenção carregada")

	return &MaintenanceService{
		scheduler: gocron.NewScheduler(time.Local),
		conn:      conn,
		config:    maintenanceConfig,
	}
}

func (s *MaintenanceService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de manutenção do banco desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de manutenção do banco")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunMaintenance(ctx); err != nil {
			logrus.WithError(err).Error("Erro na manutenção do banco")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar manutenção do banco: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de manutenção do banco")
		s.scheduler.Stop()
	}()

	return nil
}

// RunMaintenance executa a manutenção uma vez. Se já houver uma execução em
// andamento, retorna sem fazer nada.
func (s *MaintenanceService) RunMaintenance(ctx context.Context) error {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Warn("Manutenção do banco já está em execução")
		return nil
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mutex.Unlock()

	logrus.Info("Iniciando manutenção do banco")

	checkpoint, err := s.maintain(ctx)

	s.mutex.Lock()
	s.running = false
	s.lastCompletedAt = time.Now()
	s.lastError = err
	if err == nil {
		s.lastCheckpoint = checkpoint
	}
	s.mutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"log_frames":   checkpoint.LogFrames,
		"checkpointed": checkpoint.Checkpointed,
	}).Info("Manutenção do banco concluída")

	return nil
}

func (s *MaintenanceService) maintain(ctx context.Context) (CheckpointResult, error) {
	var checkpoint CheckpointResult

	if _, err := s.conn.Exec(ctx, "PRAGMA optimize"); err != nil {
		return checkpoint, errors.Wrap(err, "erro ao executar PRAGMA optimize")
	}

	err := s.conn.QueryRow(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").
		Scan(&checkpoint.Busy, &checkpoint.LogFrames, &checkpoint.Checkpointed)
	if err != nil {
		return checkpoint, errors.Wrap(err, "erro ao executar checkpoint do WAL")
	}

	return checkpoint, nil
}

// TriggerManualRun dispara a manutenção em background. Retorna false quando
// já existe uma execução em andamento.
func (s *MaintenanceService) TriggerManualRun() bool {
	s.mutex.Lock()
	running := s.running
	s.mutex.Unlock()

	if running {
		logrus.Info("Manutenção do banco já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando manutenção manual do banco")
	go func() {
		if err := s.RunMaintenance(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na manutenção manual do banco")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *MaintenanceService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status := map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_checkpoint": map[string]int{
			"busy":         s.lastCheckpoint.Busy,
			"log_frames":   s.lastCheckpoint.LogFrames,
			"checkpointed": s.lastCheckpoint.Checkpointed,
		},
	}

	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}

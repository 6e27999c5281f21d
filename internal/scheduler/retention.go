// Package scheduler contém a rotina agendada de retenção de planilhas.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/config"
)

type RetentionConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// RetentionService remove periodicamente datasets (e as vendas deles) mais
// antigos que o prazo de retenção configurado.
type RetentionService struct {
	scheduler   *gocron.Scheduler
	datasetRepo repository.DatasetRepository
	vendaRepo   repository.VendaRepository
	config      RetentionConfig

	runMutex        sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewRetentionService(
	datasetRepo repository.DatasetRepository,
	vendaRepo repository.VendaRepository,
	cfg *config.Config,
) *RetentionService {
	retentionConfig := RetentionConfig{
		CronSchedule: cfg.Retention.CronSchedule,
		Days:         cfg.Retention.Days,
		Enabled:      cfg.Retention.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.Days,
	}).Info("Configuração da rotina de retenção carregada")

	return &RetentionService{
		scheduler:   scheduler,
		datasetRepo: datasetRepo,
		vendaRepo:   vendaRepo,
		config:      retentionConfig,
	}
}

func (s *RetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Rotina de retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando rotina de retenção de planilhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRetention(); err != nil {
			logrus.WithError(err).Error("Erro na rotina de retenção de planilhas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rotina de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando rotina de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRetention executa uma varredura de retenção. Também é chamada pela rota
// administrativa de disparo manual.
func (s *RetentionService) RunRetention() error {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.running {
		logrus.Warn("Rotina de retenção já está em execução")
		return nil
	}

	s.running = true
	s.lastStartedAt = time.Now()
	defer func() {
		s.running = false
		s.lastCompletedAt = time.Now()
	}()

	logrus.WithField("retention_days", s.config.Days).Info("Iniciando varredura de retenção")

	antigos, err := s.datasetRepo.ListOlderThan(s.config.Days)
	if err != nil {
		return fmt.Errorf("erro ao listar datasets expirados: %w", err)
	}

	if len(antigos) == 0 {
		logrus.Info("Nenhum dataset expirado encontrado")
		return nil
	}

	var removidos int
	for _, dataset := range antigos {
		vendasRemovidas, err := s.vendaRepo.DeleteByDataset(dataset.ID)
		if err != nil {
			logrus.WithError(err).WithField("dataset_id", dataset.ID).Error("Erro ao remover vendas do dataset expirado")
			continue
		}

		if err := s.datasetRepo.Delete(dataset.ID); err != nil {
			logrus.WithError(err).WithField("dataset_id", dataset.ID).Error("Erro ao remover dataset expirado")
			continue
		}

		removidos++
		logrus.WithFields(logrus.Fields{
			"dataset_id":       dataset.ID,
			"user_id":          dataset.UserID,
			"vendas_removidas": vendasRemovidas,
		}).Info("Dataset expirado removido")
	}

	logrus.WithFields(logrus.Fields{
		"expirados": len(antigos),
		"removidos": removidos,
	}).Info("Varredura de retenção concluída")

	return nil
}

// Status descreve o estado atual da rotina para a rota administrativa.
func (s *RetentionService) Status() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron_schedule":     s.config.CronSchedule,
		"retention_days":    s.config.Days,
		"running":           s.running,
		"last_started_at":   formatTime(s.lastStartedAt),
		"last_completed_at": formatTime(s.lastCompletedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

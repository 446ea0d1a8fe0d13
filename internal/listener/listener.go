package listener

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"recovres/internal/config"
	"recovres/internal/pipeline"
)

type Runner interface {
	Run(ctx context.Context, opts pipeline.RunOptions) (pipeline.RunResult, error)
}

// Service polls the registry source and reparses it whenever the document changes.
type Service struct {
	runner Runner
	cfg    config.Config
	log    *logrus.Logger
}

func NewService(runner Runner, cfg config.Config, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{runner: runner, cfg: cfg, log: log}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}
	return s.runWithInterval(ctx, interval)
}

func (s *Service) runWithInterval(ctx context.Context, interval time.Duration) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			s.log.WithError(err).Error("watch cycle failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	res, err := s.runner.Run(ctx, pipeline.RunOptions{
		TracksCapacity: s.cfg.TrackCapacity,
		XLSX:           s.cfg.ExportXLSX,
	})
	if err != nil {
		return err
	}
	if res.Skipped {
		s.log.Debug("watch cycle: registry unchanged")
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"run":     res.TraceID,
		"records": res.Records,
		"output":  res.OutputPath,
		"notice":  res.NotificationPath,
	}).Info("watch cycle done")
	return nil
}

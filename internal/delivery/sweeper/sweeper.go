// Package sweeper periodically releases claims whose window elapsed.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"numatu/config"
	"numatu/internal/delivery"
	"numatu/internal/usecase"

	"go.uber.org/fx"
)

const defaultInterval = 30 * time.Second

type sweeper struct {
	collections usecase.CollectionUsecase
	interval    time.Duration
	logger      *slog.Logger
	done        chan struct{}
}

// Params holds dependencies for the sweeper, injected by Fx.
type Params struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Collections usecase.CollectionUsecase
	Logger      *slog.Logger
}

// New creates the expiry sweeper delivery.
func New(params Params) delivery.Delivery {
	interval := defaultInterval
	if params.Config != nil && params.Config.Lifecycle != nil && params.Config.Lifecycle.ExpirySweepInterval > 0 {
		interval = params.Config.Lifecycle.ExpirySweepInterval
	}

	s := newSweeper(params.Collections, interval, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.stop()

			return nil
		},
	})

	return s
}

func newSweeper(collections usecase.CollectionUsecase, interval time.Duration, logger *slog.Logger) *sweeper {
	return &sweeper{
		collections: collections,
		interval:    interval,
		logger:      logger,
		done:        make(chan struct{}),
	}
}

// Serve sweeps once per interval until stopped or ctx ends.
func (s *sweeper) Serve(ctx context.Context) error {
	s.logger.Info("Starting expiry sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	released, err := s.collections.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("Expiry sweep failed", slog.Any("error", err))

		return
	}
	if released > 0 {
		s.logger.Info("Released overdue claims", slog.Int("count", released))
	}
}

func (s *sweeper) stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

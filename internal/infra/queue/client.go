package queue

import (
	"context"
	"log/slog"
	"time"

	"numatu/config"
	"numatu/internal/domain/constants"
	"numatu/internal/domain/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DefaultQueue is the asynq queue lifecycle tasks go to
const DefaultQueue = constants.QueueDefault

// enqueuer is the part of asynq.Client the scheduler needs
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type expiryScheduler struct {
	client enqueuer
	queue  string
	now    func() time.Time
}

// NewScheduler creates an ExpiryScheduler on top of an asynq client
func NewScheduler(client enqueuer) service.ExpiryScheduler {
	return &expiryScheduler{
		client: client,
		queue:  DefaultQueue,
		now:    time.Now,
	}
}

// ScheduleExpiry enqueues a collection:expire task processed at the given time
func (s *expiryScheduler) ScheduleExpiry(ctx context.Context, collectionID uuid.UUID, at time.Time) error {
	payload := ExpirePayload{CollectionID: collectionID, ExpiresAt: at.UTC()}
	task, err := NewExpireTask(payload)
	if err != nil {
		return err
	}

	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue(s.queue),
		asynq.ProcessIn(delay),
		asynq.TaskID(expireTaskID(payload)),
		asynq.MaxRetry(3),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to enqueue expire task")
	}

	return nil
}

// SchedulerParams holds dependencies for NewExpiryScheduler, injected by Fx
type SchedulerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewExpiryScheduler returns the asynq-backed scheduler when the queue is enabled.
// Without it, claims are released by the sweeper and lazy expiry only.
func NewExpiryScheduler(params SchedulerParams) service.ExpiryScheduler {
	if params.Config.Queue == nil || !params.Config.Queue.Enabled {
		params.Logger.Info("Queue disabled, claim expiry relies on the sweeper")

		return nil
	}

	client := asynq.NewClient(RedisOpt(params.Config.Redis))
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return NewScheduler(client)
}

// RedisOpt converts the shared Redis settings into asynq connection options
func RedisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	if cfg == nil {
		cfg = &config.RedisConfig{}
	}

	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// BuildServerConfig generates the asynq server configuration
func BuildServerConfig(cfg *config.Config, logger *slog.Logger) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	if cfg.Queue != nil && cfg.Queue.Concurrency > 0 {
		concurrency = cfg.Queue.Concurrency
	}

	return RedisOpt(cfg.Redis), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue task failed",
				slog.String("type", task.Type()),
				slog.Any("error", err))
		}),
	}
}

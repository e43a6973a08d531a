// Package jobs wires background maintenance tasks into the application lifecycle.
package jobs

import (
	"context"
	"log/slog"

	"ratinity/config"
	"ratinity/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// ReconcileJobParams holds dependencies for the reconciliation job, injected by Fx.
type ReconcileJobParams struct {
	fx.In

	Lc            fx.Lifecycle
	Config        *config.Config
	RatingUsecase usecase.RatingUsecase
	Logger        *slog.Logger
}

// RegisterReconcileJob schedules the periodic aggregate reconciliation sweep.
// The sweep recomputes each store's cached rating summary from the rating
// rows and repairs any drift. An empty schedule disables the job.
func RegisterReconcileJob(params ReconcileJobParams) error {
	if params.Config.Jobs == nil || params.Config.Jobs.ReconcileSchedule == "" {
		params.Logger.Info("Aggregate reconciliation job disabled")

		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(params.Config.Jobs.ReconcileSchedule, func() {
		ctx := context.Background()
		corrected, err := params.RatingUsecase.ReconcileAggregates(ctx)
		if err != nil {
			params.Logger.Error("Aggregate reconciliation sweep failed", "error", err.Error())

			return
		}
		params.Logger.Info("Aggregate reconciliation sweep finished", "corrected", corrected)
	})
	if err != nil {
		return errors.Wrap(err, "failed to schedule reconciliation job")
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			params.Logger.Info("Aggregate reconciliation job scheduled",
				"schedule", params.Config.Jobs.ReconcileSchedule)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		},
	})

	return nil
}

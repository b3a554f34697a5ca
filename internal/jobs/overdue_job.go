// Package jobs holds scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"vessel-orders/internal/events"
	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/eventbus"
)

const scanTimeout = 2 * time.Minute

type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// OverdueJob periodically finds open orders past their due date, publishes one
// OrderOverdueEvent per order and marks them so they are reported only once.
type OverdueJob struct {
	orderRepo repositories.ServiceOrderRepositoryInterface
	bus       Publisher
	cron      *cron.Cron
	spec      string
	logger    *zap.Logger
	now       func() time.Time
}

func NewOverdueJob(orderRepo repositories.ServiceOrderRepositoryInterface, bus Publisher, spec string, logger *zap.Logger) *OverdueJob {
	return &OverdueJob{
		orderRepo: orderRepo,
		bus:       bus,
		cron:      cron.New(),
		spec:      spec,
		logger:    logger.With(zap.String("component", "overdue_job")),
		now:       time.Now,
	}
}

func (j *OverdueJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		if _, err := j.Scan(ctx); err != nil {
			j.logger.Error("overdue scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule overdue scan %q: %w", j.spec, err)
	}
	j.cron.Start()
	j.logger.Info("overdue job started", zap.String("spec", j.spec))
	return nil
}

// Stop waits for a running scan to finish or ctx to expire.
func (j *OverdueJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
	j.logger.Info("overdue job stopped")
}

// Scan runs one pass and returns the number of orders reported.
func (j *OverdueJob) Scan(ctx context.Context) (int, error) {
	orders, err := j.orderRepo.ListOverdue(ctx, j.now())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	// marking first keeps a failed publish from repeating forever
	if err := j.orderRepo.MarkOverdueNotified(ctx, ids); err != nil {
		return 0, err
	}

	for _, o := range orders {
		event := events.OrderOverdueEvent{
			OrderID:     o.ID.String(),
			Title:       o.Title,
			Ship:        o.Ship,
			Status:      o.Status,
			DueDate:     o.DueDate.Time,
			CreatedByID: o.CreatedByID.String(),
		}
		if o.AssignedToID.Valid {
			event.AssignedToID = o.AssignedToID.UUID.String()
		}
		j.bus.Publish(ctx, event)
	}
	j.logger.Info("overdue orders reported", zap.Int("count", len(orders)))
	return len(orders), nil
}

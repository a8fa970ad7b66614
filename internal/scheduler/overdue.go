// Package scheduler runs the daily overdue sweep: an advisory pass over
// every rented item that surfaces accrued penalties in logs and metrics.
// Nothing here persists a penalty; that only happens when staff finalize
// the return.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tailorshop-backend/internal/cache"
	"tailorshop-backend/internal/lifecycle"
	"tailorshop-backend/internal/metrics"
	"tailorshop-backend/internal/penalty"
)

type OverdueSweeper struct {
	cache     *cache.OrderCache
	logger    *zap.Logger
	dailyRate int64
	cron      *cron.Cron
	timeNow   func() time.Time
}

func NewOverdueSweeper(orderCache *cache.OrderCache, logger *zap.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		cache:     orderCache,
		logger:    logger,
		dailyRate: penalty.DefaultDailyRate,
		cron:      cron.New(),
		timeNow:   func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the sweep every morning at 08:00.
func (s *OverdueSweeper) Start() error {
	if _, err := s.cron.AddFunc("0 8 * * *", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *OverdueSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep walks the rented items in the cache and logs every one that is
// overdue or coming due.
func (s *OverdueSweeper) Sweep() {
	now := s.timeNow()
	rented := s.cache.ListByStatus(lifecycle.StatusRented)

	overdue := 0
	for _, item := range rented {
		assessment := penalty.Assess(item.RentalEnd, now, s.dailyRate)
		switch assessment.Classification {
		case penalty.Overdue:
			overdue++
			s.logger.Warn("Rental overdue",
				zap.String("order_item_id", item.ID),
				zap.String("customer", item.CustomerName),
				zap.Int("days_overdue", assessment.DaysOverdue),
				zap.Int64("accrued_penalty", assessment.PenaltyAmount))
		case penalty.DueToday, penalty.DueSoon:
			s.logger.Info("Rental due soon",
				zap.String("order_item_id", item.ID),
				zap.String("classification", string(assessment.Classification)),
				zap.Time("due", item.RentalEnd))
		}
	}

	metrics.OverdueItems.Set(float64(overdue))
	s.logger.Info("Overdue sweep finished",
		zap.Int("rented", len(rented)),
		zap.Int("overdue", overdue))
}

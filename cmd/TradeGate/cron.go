package main

import (
	"context"
	"time"

	"TradeGate/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/robfig/cron/v3"
)

// StartRateLimitSweepCron starts the hourly sweep that trims stale attempts
// out of every rate-limit window. Abandoned keys would otherwise hold their
// last window forever.
func StartRateLimitSweepCron(limiter *biz.RateLimiterUseCase, logger log.Logger) *cron.Cron {
	helper := log.NewHelper(logger)

	c := cron.New(cron.WithSeconds())

	// Top of every hour (sec min hour dom month dow)
	_, err := c.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		swept, err := limiter.SweepStale(ctx)
		if err != nil {
			helper.Errorw("msg", "rate limit sweep failed", "error", err)
			return
		}
		helper.Infow("msg", "rate limit sweep finished", "keys_cleaned", swept)
	})

	if err != nil {
		helper.Errorw("msg", "failed to register rate limit sweep cron job", "error", err)
		return nil
	}

	c.Start()
	helper.Info("rate limit sweep cron job started: runs hourly")

	return c
}

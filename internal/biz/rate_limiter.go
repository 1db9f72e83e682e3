package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// Well-known action keys rate-limited by the service layer. The limiter
// itself is generic over any string key.
const (
	ActionLoginAttempt = "login_attempt"
	ActionOTPRequest   = "otp_request"
)

// staleWindow is how long an attempt can sit in any window before the
// periodic sweep discards it. Larger than every configured window.
const staleWindow = time.Hour

// RateLimitRepo is the attempt-window storage behind the sliding-window
// limiter. Interface is defined here in the biz layer; the data layer
// implements it on a Redis sorted set.
type RateLimitRepo interface {
	// Prune drops attempts recorded before the cutoff from the action's window.
	Prune(ctx context.Context, actionKey string, before time.Time) error

	// Count returns the number of attempts currently in the action's window.
	Count(ctx context.Context, actionKey string) (int64, error)

	// Record appends an attempt timestamp to the action's window.
	Record(ctx context.Context, actionKey string, at time.Time) error

	// Sweep drops attempts older than the cutoff across all action keys.
	Sweep(ctx context.Context, before time.Time) (int, error)
}

// RateLimiterUseCase implements sliding-window rate limiting for sensitive
// actions (login, OTP requests). The window slides continuously with
// wall-clock time: each check prunes stale attempts, rejects when the
// remaining count has reached the limit, and records the attempt otherwise.
type RateLimiterUseCase struct {
	repo   RateLimitRepo
	logger *log.Helper

	// now is injectable for deterministic window tests.
	now func() time.Time
}

// NewRateLimiterUseCase creates a new rate limiter use case.
func NewRateLimiterUseCase(repo RateLimitRepo, logger log.Logger) *RateLimiterUseCase {
	return &RateLimiterUseCase{
		repo:   repo,
		logger: log.NewHelper(logger),
		now:    time.Now,
	}
}

// newRateLimitExceededError creates an HTTP 429 error for the rejected action.
func newRateLimitExceededError(actionKey string, limit int, window time.Duration) error {
	return errors.New(
		429, // HTTP 429 Too Many Requests
		"RATE_LIMITED",
		fmt.Sprintf("rate limit exceeded: action=%s limit=%d window=%s", actionKey, limit, window),
	)
}

// Allow reports whether one more attempt at actionKey is allowed under the
// given limit and window. A rejected attempt is NOT recorded: only allowed
// attempts consume window capacity.
//
// Storage degradation: on repo failure the attempt is allowed and a warning
// is logged, matching the availability-over-strictness policy used for all
// Redis-backed checks.
func (uc *RateLimiterUseCase) Allow(ctx context.Context, actionKey string, limit int, window time.Duration) bool {
	if limit <= 0 {
		// No limit configured, allow request
		return true
	}

	now := uc.now()

	if err := uc.repo.Prune(ctx, actionKey, now.Add(-window)); err != nil {
		uc.logger.Warnf("rate limit prune failed for %s: %v (attempt allowed)", actionKey, err)
		return true
	}

	count, err := uc.repo.Count(ctx, actionKey)
	if err != nil {
		uc.logger.Warnf("rate limit count failed for %s: %v (attempt allowed)", actionKey, err)
		return true
	}

	if count >= int64(limit) {
		uc.logger.Warnw("msg", "rate limit exceeded",
			"action", actionKey,
			"current", count,
			"limit", limit)
		return false
	}

	if err := uc.repo.Record(ctx, actionKey, now); err != nil {
		uc.logger.Warnf("rate limit record failed for %s: %v (attempt allowed)", actionKey, err)
	}

	return true
}

// Check is the error-returning form of Allow for HTTP handlers: a rejected
// attempt yields an HTTP 429 error with reason RATE_LIMITED.
func (uc *RateLimiterUseCase) Check(ctx context.Context, actionKey string, limit int, window time.Duration) error {
	if uc.Allow(ctx, actionKey, limit, window) {
		return nil
	}
	return newRateLimitExceededError(actionKey, limit, window)
}

// SweepStale removes attempts older than staleWindow from every action's
// window. Abandoned keys shrink to empty instead of growing without bound.
// Called periodically by the cron job.
func (uc *RateLimiterUseCase) SweepStale(ctx context.Context) (int, error) {
	swept, err := uc.repo.Sweep(ctx, uc.now().Add(-staleWindow))
	if err != nil {
		uc.logger.Warnf("rate limit sweep failed: %v", err)
		return swept, err
	}

	uc.logger.Infow("msg", "rate limit sweep completed", "keys_cleaned", swept)
	return swept, nil
}

package biz

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryRateRepo is an in-memory RateLimitRepo used to exercise real
// window behavior against a fake clock.
type memoryRateRepo struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newMemoryRateRepo() *memoryRateRepo {
	return &memoryRateRepo{attempts: make(map[string][]time.Time)}
}

func (r *memoryRateRepo) Prune(_ context.Context, actionKey string, before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.attempts[actionKey][:0]
	for _, at := range r.attempts[actionKey] {
		if !at.Before(before) {
			kept = append(kept, at)
		}
	}
	r.attempts[actionKey] = kept
	return nil
}

func (r *memoryRateRepo) Count(_ context.Context, actionKey string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.attempts[actionKey])), nil
}

func (r *memoryRateRepo) Record(_ context.Context, actionKey string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[actionKey] = append(r.attempts[actionKey], at)
	return nil
}

func (r *memoryRateRepo) Sweep(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	swept := 0
	for key, attempts := range r.attempts {
		kept := attempts[:0]
		for _, at := range attempts {
			if !at.Before(before) {
				kept = append(kept, at)
			}
		}
		if len(kept) < len(attempts) {
			swept++
		}
		r.attempts[key] = kept
	}
	return swept, nil
}

// MockRateLimitRepo is a mock implementation of RateLimitRepo for testing
// degradation paths.
type MockRateLimitRepo struct {
	mock.Mock
}

func (m *MockRateLimitRepo) Prune(ctx context.Context, actionKey string, before time.Time) error {
	args := m.Called(ctx, actionKey, before)
	return args.Error(0)
}

func (m *MockRateLimitRepo) Count(ctx context.Context, actionKey string) (int64, error) {
	args := m.Called(ctx, actionKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimitRepo) Record(ctx context.Context, actionKey string, at time.Time) error {
	args := m.Called(ctx, actionKey, at)
	return args.Error(0)
}

func (m *MockRateLimitRepo) Sweep(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int), args.Error(1)
}

// newTestLimiter wires a limiter to the given repo with a controllable clock.
func newTestLimiter(repo RateLimitRepo) (*RateLimiterUseCase, *time.Time) {
	uc := NewRateLimiterUseCase(repo, log.NewStdLogger(os.Stdout))
	current := time.Unix(1700000000, 0)
	uc.now = func() time.Time { return current }
	return uc, &current
}

func TestAllow_SlidingWindow(t *testing.T) {
	uc, now := newTestLimiter(newMemoryRateRepo())
	ctx := context.Background()

	// Three immediate attempts at limit 3 all pass
	for i := 0; i < 3; i++ {
		assert.True(t, uc.Allow(ctx, "x", 3, time.Minute), "attempt %d", i+1)
	}

	// The fourth immediate attempt is rejected
	assert.False(t, uc.Allow(ctx, "x", 3, time.Minute))

	// Past the window from the first attempt, capacity frees up again
	*now = now.Add(61 * time.Second)
	assert.True(t, uc.Allow(ctx, "x", 3, time.Minute))
}

func TestAllow_RejectionNotRecorded(t *testing.T) {
	repo := newMemoryRateRepo()
	uc, _ := newTestLimiter(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		uc.Allow(ctx, "x", 2, time.Minute)
	}

	count, err := repo.Count(ctx, "x")
	require.NoError(t, err)
	// Only the two allowed attempts consumed capacity
	assert.Equal(t, int64(2), count)
}

func TestAllow_WindowSlidesGradually(t *testing.T) {
	uc, now := newTestLimiter(newMemoryRateRepo())
	ctx := context.Background()

	assert.True(t, uc.Allow(ctx, "x", 2, time.Minute))
	*now = now.Add(30 * time.Second)
	assert.True(t, uc.Allow(ctx, "x", 2, time.Minute))
	assert.False(t, uc.Allow(ctx, "x", 2, time.Minute))

	// 31s later the first attempt ages out but the second is still inside
	*now = now.Add(31 * time.Second)
	assert.True(t, uc.Allow(ctx, "x", 2, time.Minute))
	assert.False(t, uc.Allow(ctx, "x", 2, time.Minute))
}

func TestAllow_KeysIndependent(t *testing.T) {
	uc, _ := newTestLimiter(newMemoryRateRepo())
	ctx := context.Background()

	assert.True(t, uc.Allow(ctx, ActionLoginAttempt, 1, time.Minute))
	assert.False(t, uc.Allow(ctx, ActionLoginAttempt, 1, time.Minute))
	// A different action key has its own window
	assert.True(t, uc.Allow(ctx, ActionOTPRequest, 1, time.Minute))
}

func TestAllow_NoLimitConfigured(t *testing.T) {
	uc, _ := newTestLimiter(newMemoryRateRepo())
	assert.True(t, uc.Allow(context.Background(), "x", 0, time.Minute))
}

func TestAllow_RepoFailureDegradesToAllow(t *testing.T) {
	mockRepo := new(MockRateLimitRepo)
	uc, _ := newTestLimiter(mockRepo)
	ctx := context.Background()

	mockRepo.On("Prune", ctx, "x", mock.Anything).Return(errors.New("redis connection failed"))

	// Storage failure must not lock users out
	assert.True(t, uc.Allow(ctx, "x", 3, time.Minute))
	mockRepo.AssertExpectations(t)
}

func TestAllow_CountFailureDegradesToAllow(t *testing.T) {
	mockRepo := new(MockRateLimitRepo)
	uc, _ := newTestLimiter(mockRepo)
	ctx := context.Background()

	mockRepo.On("Prune", ctx, "x", mock.Anything).Return(nil)
	mockRepo.On("Count", ctx, "x").Return(int64(0), errors.New("redis connection failed"))

	assert.True(t, uc.Allow(ctx, "x", 3, time.Minute))
	mockRepo.AssertExpectations(t)
}

func TestCheck_ReturnsRateLimitedError(t *testing.T) {
	uc, _ := newTestLimiter(newMemoryRateRepo())
	ctx := context.Background()

	require.NoError(t, uc.Check(ctx, ActionOTPRequest, 1, time.Minute))

	err := uc.Check(ctx, ActionOTPRequest, 1, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMITED")
}

func TestSweepStale(t *testing.T) {
	repo := newMemoryRateRepo()
	uc, now := newTestLimiter(repo)
	ctx := context.Background()

	assert.True(t, uc.Allow(ctx, "x", 5, time.Minute))
	assert.True(t, uc.Allow(ctx, "y", 5, time.Minute))

	*now = now.Add(2 * time.Hour)
	swept, err := uc.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	count, err := repo.Count(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

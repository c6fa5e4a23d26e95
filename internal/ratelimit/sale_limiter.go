package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/redbarber/pos/internal/config"
)

const (
	keySaleRecordWorker = "sale:record:worker:%s"
	keySaleAppointment  = "sale:appointment:%s"

	appointmentLockTTL = 10 * time.Second
)

// SaleLimiter throttles sale recording per worker and serializes
// concurrent recordings against the same appointment. A nil limiter
// (rate limiting disabled) allows everything.
type SaleLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

func NewSaleLimiter(cfg config.Config) (*SaleLimiter, error) {
	if !cfg.RateLimitEnabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if cfg.RateLimitPerSec <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("sale rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &SaleLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    float64(cfg.RateLimitPerSec),
		burst:   int(cfg.RateLimitBurst),
	}, nil
}

func (l *SaleLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// AllowWorker reports whether the worker may record another sale right
// now. Callers are expected to fail open when err is non-nil.
func (l *SaleLimiter) AllowWorker(ctx context.Context, workerID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keySaleRecordWorker, strings.TrimSpace(workerID)), l.rate, l.burst)
}

// TryLockAppointment guards against two concurrent sales closing the
// same appointment.
func (l *SaleLimiter) TryLockAppointment(ctx context.Context, appointmentID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keySaleAppointment, strings.TrimSpace(appointmentID))
	return l.locker.TryLock(ctx, key, appointmentLockTTL)
}

func (l *SaleLimiter) ReleaseAppointment(ctx context.Context, appointmentID, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keySaleAppointment, strings.TrimSpace(appointmentID))
	return l.locker.Release(ctx, key, token)
}

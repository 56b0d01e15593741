package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/janmarg/civicreport/pkg/utils"
)

// Manager provides Redis-backed submission throttling. Reporter IDs are
// hashed before they become Redis keys so raw user IDs never land in the
// cache.
type Manager struct {
	redis     *redis.Client
	perMinute int
	perDay    int
}

// SetLimits allows tests to override submission limits
func (m *Manager) SetLimits(perMinute, perDay int) {
	m.perMinute = perMinute
	m.perDay = perDay
}

func NewManager(redisURL string, perMinute, perDay int) (*Manager, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Manager{redis: client, perMinute: perMinute, perDay: perDay}, nil
}

func (m *Manager) Close() error { return m.redis.Close() }

func dayKey(t time.Time) string { return t.Format("20060102") }

// CheckSubmission returns allowed=false when the reporter has exhausted the
// minute window or the daily cap; resetSec says when the tighter bucket
// reopens. Counters are only consumed when the submission is allowed, so a
// rejected request does not burn quota.
func (m *Manager) CheckSubmission(ctx context.Context, reporterID string) (allowed bool, resetSec int, err error) {
	now := time.Now().UTC()
	hashed := utils.HashString(reporterID)

	window := now.Unix() / 60
	minuteKey := fmt.Sprintf("submit:%s:m:%d", hashed, window)
	dailyKey := fmt.Sprintf("submit:%s:d:%s", hashed, dayKey(now))

	pipe := m.redis.TxPipeline()
	minuteGet := pipe.Get(ctx, minuteKey)
	dailyGet := pipe.Get(ctx, dailyKey)
	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return false, 0, err
	}

	minuteCount, _ := minuteGet.Int()
	dailyCount, _ := dailyGet.Int()

	if minuteCount >= m.perMinute {
		secPassed := int(now.Unix() % 60)
		return false, 60 - secPassed, nil
	}
	if dailyCount >= m.perDay {
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
		return false, int(time.Until(midnight).Seconds()), nil
	}

	pipe = m.redis.TxPipeline()
	pipe.Incr(ctx, minuteKey)
	pipe.Expire(ctx, minuteKey, time.Minute)
	pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	return true, 0, nil
}

// SubmissionsToday returns how many issues the reporter filed today
func (m *Manager) SubmissionsToday(ctx context.Context, reporterID string) (int, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("submit:%s:d:%s", utils.HashString(reporterID), dayKey(now))
	val, err := m.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockery --name RateLimiter --output ./mocks --outpkg mocks --case=underscore
type RateLimiter interface {
	// Allow はキーに対する今回の操作を許可するかを返します。
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter は固定ウィンドウ方式のカウンタです。
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisClient は URL から Redis クライアントを作り、疎通を確認します。
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisRateLimiter は window ごとに limit 回まで許可します。window は 1 秒以上です。
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) (*RedisRateLimiter, error) {
	if window < time.Second {
		return nil, fmt.Errorf("rate limit window must be at least 1s, got %s", window)
	}
	return &RedisRateLimiter{client: client, limit: int64(limit), window: window, now: time.Now}, nil
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / l.window.Nanoseconds()
	windowKey := fmt.Sprintf("rate:%s:%d", key, bucket)

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.limit, nil
}

// NoopRateLimiter は常に許可します。Redis 未設定時に使います。
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

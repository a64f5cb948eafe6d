package service

import "time"

type options struct {
	now           func() time.Time
	generateCode  func() (string, error)
	verifyLimiter RateLimiter
}

// Option はサービス生成時の差し替え設定です。
type Option func(*options)

// WithClock は現在時刻の取得方法を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithCodeGenerator はリセットコードの生成方法を差し替えます。
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(o *options) {
		o.generateCode = gen
	}
}

// WithVerifyLimiter はコード照合とパスワード再設定の試行制限を差し替えます。
// 指定しなければリクエスト用の RateLimiter をそのまま使います。
func WithVerifyLimiter(l RateLimiter) Option {
	return func(o *options) {
		o.verifyLimiter = l
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now, generateCode: generateResetCode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

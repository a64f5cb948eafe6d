package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// パスワードリセットの各段階の件数
var resetEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "password_reset_events_total",
		Help: "Password reset lifecycle events by outcome",
	},
	[]string{"event"},
)

const (
	eventCodeIssued    = "code_issued"
	eventUnknownEmail  = "unknown_email"
	eventRateLimited   = "rate_limited"
	eventVerifyLimited = "verify_rate_limited"
	eventMailFailed    = "mail_failed"
	eventCodeVerified  = "code_verified"
	eventCodeInvalid   = "code_invalid"
	eventCodeExpired   = "code_expired"
	eventResetComplete = "reset_completed"
)

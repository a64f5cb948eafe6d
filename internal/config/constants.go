// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "fadeu"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultDictionaryPath    = "dictionary.db"
	DefaultMinPasswordLength = 8

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// リセットコードの有効期限。発行時刻からの固定時間で、延長はしない
	DefaultResetCodeTTL = time.Hour

	DefaultResetRequestsPerWindow = 5
	DefaultResetRequestWindow     = 15 * time.Minute
	// コード照合とパスワード再設定の試行回数。ウィンドウはリクエストと共通
	DefaultVerifyAttemptsPerWindow = 10

	DefaultAudioURLTTL = 15 * time.Minute
)

// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// DatabaseConfig は2つのストアの接続先を保持します。
// PrimaryURL は書き込み可能なユーザーデータ用 (PostgreSQL)、
// DictionaryPath は読み取り専用の辞書 (SQLite ファイル) です。
type DatabaseConfig struct {
	PrimaryURL     string `mapstructure:"primary_url" validate:"required"`
	DictionaryPath string `mapstructure:"dictionary_path" validate:"required"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	SecretKey       string        `mapstructure:"secret_key" validate:"required,min=16"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl" validate:"gt=0"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl" validate:"gt=0"`
}

type AuthConfig struct {
	MinPasswordLength int           `mapstructure:"min_password_length" validate:"gte=8,lte=72"`
	ResetCodeTTL      time.Duration `mapstructure:"reset_code_ttl" validate:"gt=0"`
}

type MailerConfig struct {
	Type string `mapstructure:"type" validate:"oneof=log smtp ses"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	ResetRequests  int           `mapstructure:"reset_requests" validate:"gte=0"`
	VerifyAttempts int           `mapstructure:"verify_attempts" validate:"gte=0"`
	ResetWindow    time.Duration `mapstructure:"reset_window" validate:"gte=0"`
}

// AudioConfig は単語の音声ファイルへのリンク生成設定です。
// Bucket が空なら BaseURL + ファイル名を返し、両方空なら音声は提供しません。
type AudioConfig struct {
	Bucket          string        `mapstructure:"bucket"`
	Region          string        `mapstructure:"region"`
	Prefix          string        `mapstructure:"prefix"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	URLTTL          time.Duration `mapstructure:"url_ttl"`
	BaseURL         string        `mapstructure:"base_url"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Mailer    MailerConfig    `mapstructure:"mailer"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	SES       SESConfig       `mapstructure:"ses"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Audio     AudioConfig     `mapstructure:"audio"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

var Cfg Config

// LoadConfig は .env → config.yaml → 環境変数 の順に読み込み、Cfg に格納します。
func LoadConfig(path string) error {
	// .env は任意。存在しなくてもエラーにしない
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// よく使う秘密情報は短い環境変数名でも受け付ける
	_ = v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	_ = v.BindEnv("database.primary_url", "DATABASE_URL")
	_ = v.BindEnv("database.dictionary_path", "DICTIONARY_PATH")
	_ = v.BindEnv("redis.url", "REDIS_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if err := Validate(&cfg); err != nil {
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Mailer: %s", Cfg.Mailer.Type)
	log.Printf("Reset code TTL: %s", Cfg.Auth.ResetCodeTTL)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("app.name", AppName)
	v.SetDefault("database.dictionary_path", DefaultDictionaryPath)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	v.SetDefault("jwt.refresh_token_ttl", DefaultRefreshTokenTTL)
	v.SetDefault("auth.min_password_length", DefaultMinPasswordLength)
	v.SetDefault("auth.reset_code_ttl", DefaultResetCodeTTL)
	v.SetDefault("mailer.type", "log")
	v.SetDefault("rate_limit.reset_requests", DefaultResetRequestsPerWindow)
	v.SetDefault("rate_limit.verify_attempts", DefaultVerifyAttemptsPerWindow)
	v.SetDefault("rate_limit.reset_window", DefaultResetRequestWindow)
	v.SetDefault("audio.url_ttl", DefaultAudioURLTTL)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type", "X-Request-ID"})
}

// Validate は設定値を検証します。
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Mailer.Type == "smtp" && cfg.SMTP.Host == "" {
		return errors.New("invalid config: smtp.host is required when mailer.type is smtp")
	}
	if cfg.Mailer.Type == "ses" && (cfg.SES.Region == "" || cfg.SES.From == "") {
		return errors.New("invalid config: ses.region and ses.from are required when mailer.type is ses")
	}
	rl := cfg.RateLimit
	if (rl.ResetRequests > 0 || rl.VerifyAttempts > 0) && rl.ResetWindow < time.Second {
		return fmt.Errorf("invalid config: rate_limit.reset_window must be at least 1s, got %s", rl.ResetWindow)
	}
	return nil
}

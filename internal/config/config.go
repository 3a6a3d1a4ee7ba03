package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"

	sandboxBaseURL    = "https://api-m.sandbox.paypal.com"
	productionBaseURL = "https://api-m.paypal.com"
)

var defaultDevOrigins = []string{"http://localhost:5500", "http://127.0.0.1:5500"}

// Config is built once at startup and passed to every component that needs it.
type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	PayPal   PayPal
	Pricing  Pricing
	CORS     CORS
	Breaker  Breaker
	Notifier Notifier
}

type PayPal struct {
	ClientID     string
	ClientSecret string
	Env          string
	BaseURL      string
	TokenTimeout time.Duration
	OrderTimeout time.Duration
}

// String hides the client secret so the struct can be logged safely.
func (p PayPal) String() string {
	secret := ""
	if p.ClientSecret != "" {
		secret = "[redacted]"
	}
	return fmt.Sprintf("{ClientID:%s ClientSecret:%s Env:%s BaseURL:%s}", p.ClientID, secret, p.Env, p.BaseURL)
}

type Pricing struct {
	SettlementCurrency string
	LocalCurrency      string
	ConversionRate     decimal.Decimal
}

type CORS struct {
	AllowedOrigins []string
}

// AllowsAnyOrigin reports whether the allow-list contains the "*" wildcard.
func (c CORS) AllowsAnyOrigin() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

type Breaker struct {
	Enabled          bool
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

type Notifier struct {
	Timeout      time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	RedisAddr    string
	RedisChannel string
}

// Load reads an optional .env file, then the process environment. Values already
// present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8000")
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("MAX_REQUEST_BODY_BYTES", 1<<20) // 1MB
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("PAYPAL_ENV", EnvSandbox)
	v.SetDefault("PAYPAL_TOKEN_TIMEOUT", "20s")
	v.SetDefault("PAYPAL_ORDER_TIMEOUT", "30s")

	v.SetDefault("SETTLEMENT_CURRENCY", "USD")
	v.SetDefault("LOCAL_CURRENCY", "INR")
	v.SetDefault("CONVERSION_RATE", "83.0")

	v.SetDefault("BREAKER_ENABLED", false)
	v.SetDefault("BREAKER_FAILURE_THRESHOLD", 5)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")

	v.SetDefault("NOTIFY_TIMEOUT", "5s")
	v.SetDefault("NOTIFY_KAFKA_TOPIC", "owner-notifications")
	v.SetDefault("NOTIFY_REDIS_CHANNEL", "owner-notifications")

	return v
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	env := strings.ToLower(strings.TrimSpace(v.GetString("PAYPAL_ENV")))
	if env != EnvSandbox && env != EnvProduction {
		return nil, fmt.Errorf("PAYPAL_ENV must be %q or %q, got %q", EnvSandbox, EnvProduction, env)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(v.GetString("PAYPAL_BASE_URL")), "/")
	if baseURL == "" {
		baseURL = sandboxBaseURL
		if env == EnvProduction {
			baseURL = productionBaseURL
		}
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("CONVERSION_RATE")))
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERSION_RATE: %w", err)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("CONVERSION_RATE must be positive, got %s", rate)
	}

	origins := splitCSV(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 && env == EnvSandbox {
		origins = append([]string(nil), defaultDevOrigins...)
	}

	cfg := &Config{
		HTTPPort:           v.GetString("HTTP_PORT"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		MaxRequestBodySize: v.GetInt64("MAX_REQUEST_BODY_BYTES"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		PayPal: PayPal{
			ClientID:     strings.TrimSpace(v.GetString("PAYPAL_CLIENT_ID")),
			ClientSecret: strings.TrimSpace(v.GetString("PAYPAL_SECRET")),
			Env:          env,
			BaseURL:      baseURL,
			TokenTimeout: v.GetDuration("PAYPAL_TOKEN_TIMEOUT"),
			OrderTimeout: v.GetDuration("PAYPAL_ORDER_TIMEOUT"),
		},
		Pricing: Pricing{
			SettlementCurrency: strings.ToUpper(v.GetString("SETTLEMENT_CURRENCY")),
			LocalCurrency:      strings.ToUpper(v.GetString("LOCAL_CURRENCY")),
			ConversionRate:     rate,
		},
		CORS: CORS{AllowedOrigins: origins},
		Breaker: Breaker{
			Enabled:          v.GetBool("BREAKER_ENABLED"),
			FailureThreshold: v.GetUint32("BREAKER_FAILURE_THRESHOLD"),
			OpenTimeout:      v.GetDuration("BREAKER_OPEN_TIMEOUT"),
		},
		Notifier: Notifier{
			Timeout:      v.GetDuration("NOTIFY_TIMEOUT"),
			KafkaBrokers: splitCSV(v.GetString("NOTIFY_KAFKA_BROKERS")),
			KafkaTopic:   v.GetString("NOTIFY_KAFKA_TOPIC"),
			RedisAddr:    strings.TrimSpace(v.GetString("NOTIFY_REDIS_ADDR")),
			RedisChannel: v.GetString("NOTIFY_REDIS_CHANNEL"),
		},
	}

	if env == EnvProduction && cfg.CORS.AllowsAnyOrigin() {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must not contain \"*\" in production")
	}
	if cfg.PayPal.TokenTimeout <= 0 || cfg.PayPal.OrderTimeout <= 0 {
		return nil, errors.New("PAYPAL_TOKEN_TIMEOUT and PAYPAL_ORDER_TIMEOUT must be positive")
	}
	if cfg.Breaker.Enabled && cfg.Breaker.FailureThreshold == 0 {
		return nil, errors.New("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}

	return cfg, nil
}

// Warnings lists settings that are allowed but should be hardened before going live.
func (c *Config) Warnings() []string {
	var w []string
	if c.CORS.AllowsAnyOrigin() {
		w = append(w, "CORS_ALLOWED_ORIGINS contains \"*\": any origin may call the API; restrict it before production")
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		w = append(w, "CORS_ALLOWED_ORIGINS is empty: browsers on other origins will be blocked")
	}
	if c.PayPal.ClientID == "" || c.PayPal.ClientSecret == "" {
		w = append(w, "PayPal credentials are incomplete: checkout requests will fail")
	}
	return w
}

// RequireClientID returns a MissingSettingError when the public client id is absent.
func (p PayPal) RequireClientID() error {
	if p.ClientID == "" {
		return &MissingSettingError{Names: []string{"PAYPAL_CLIENT_ID"}}
	}
	return nil
}

// RequireCredentials checks both halves of the client-credentials pair.
func (p PayPal) RequireCredentials() error {
	var missing []string
	if p.ClientID == "" {
		missing = append(missing, "PAYPAL_CLIENT_ID")
	}
	if p.ClientSecret == "" {
		missing = append(missing, "PAYPAL_SECRET")
	}
	if len(missing) > 0 {
		return &MissingSettingError{Names: missing}
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

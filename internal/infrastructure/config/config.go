package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Sync         SyncConfig
	Video        VideoConfig
	Storage      StorageConfig
	Mail         MailConfig
	Integrations IntegrationsConfig
	Swagger      SwaggerConfig
	Telemetry    TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
	MaxRefreshCount        int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// SyncConfig holds the background order/inventory sync loops
type SyncConfig struct {
	Enabled bool

	// OrderInterval is how often the Clover order loop wakes up
	OrderInterval time.Duration
	// InventoryInterval is how often the BigCommerce inventory loop wakes up
	InventoryInterval time.Duration

	// WindowStartHour/WindowEndHour bound the local hours during which
	// scheduled syncs run (0 and 24 mean always)
	WindowStartHour int
	WindowEndHour   int

	// Lookback is how far back each scheduled pull reaches
	Lookback time.Duration
}

// VideoConfig holds the video generation pipeline settings
type VideoConfig struct {
	PollInterval   time.Duration // Fixed interval between generation task polls
	MaxPollAttempt int           // Attempts before a task is declared timed out
	ChunkSeconds   int           // Max footage seconds per render chunk
	RenderEndpoint string        // Remote chunk renderer URL
	FFmpegPath     string        // ffmpeg binary used for concatenation
	WorkDir        string        // Scratch space for downloaded chunks
}

// StorageConfig holds S3 object storage settings
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignExpiry   time.Duration
}

// MailConfig holds SendGrid settings
type MailConfig struct {
	Enabled         bool
	SendGridAPIKey  string
	FromName        string
	FromEmail       string
	AlertRecipients []string
}

// IntegrationsConfig holds vendor API endpoints and credentials. A blank
// credential leaves that channel unregistered.
type IntegrationsConfig struct {
	CloverBaseURL   string
	CloverMerchant  string
	CloverAPIToken  string

	BigCommerceBaseURL   string
	BigCommerceStoreHash string
	BigCommerceToken     string

	AmazonBaseURL      string
	AmazonAuthURL      string
	AmazonSellerID     string
	AmazonClientID     string
	AmazonClientSecret string
	AmazonRefreshToken string
	ShippoBaseURL      string
	ShippoToken        string
	PiAPIBaseURL       string
	PiAPIKey           string
	OpenAIBaseURL      string
	OpenAIKey          string
	OpenAITTSModel     string
	OpenAITTSVoice     string
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with PINEHILL_ prefix (e.g., PINEHILL_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing config file is fine, defaults and env vars apply
	}

	v.SetEnvPrefix("PINEHILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
			MaxRefreshCount:        v.GetInt("jwt.max_refresh_count"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Sync: SyncConfig{
			Enabled:           v.GetBool("sync.enabled"),
			OrderInterval:     v.GetDuration("sync.order_interval"),
			InventoryInterval: v.GetDuration("sync.inventory_interval"),
			WindowStartHour:   v.GetInt("sync.window_start_hour"),
			WindowEndHour:     v.GetInt("sync.window_end_hour"),
			Lookback:          v.GetDuration("sync.lookback"),
		},
		Video: VideoConfig{
			PollInterval:   v.GetDuration("video.poll_interval"),
			MaxPollAttempt: v.GetInt("video.max_poll_attempts"),
			ChunkSeconds:   v.GetInt("video.chunk_seconds"),
			RenderEndpoint: v.GetString("video.render_endpoint"),
			FFmpegPath:     v.GetString("video.ffmpeg_path"),
			WorkDir:        v.GetString("video.work_dir"),
		},
		Storage: StorageConfig{
			Endpoint:        v.GetString("storage.endpoint"),
			Region:          v.GetString("storage.region"),
			Bucket:          v.GetString("storage.bucket"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			UsePathStyle:    v.GetBool("storage.use_path_style"),
			PresignExpiry:   v.GetDuration("storage.presign_expiry"),
		},
		Mail: MailConfig{
			Enabled:         v.GetBool("mail.enabled"),
			SendGridAPIKey:  v.GetString("mail.sendgrid_api_key"),
			FromName:        v.GetString("mail.from_name"),
			FromEmail:       v.GetString("mail.from_email"),
			AlertRecipients: v.GetStringSlice("mail.alert_recipients"),
		},
		Integrations: IntegrationsConfig{
			CloverBaseURL:  v.GetString("integrations.clover_base_url"),
			CloverMerchant: v.GetString("integrations.clover_merchant_id"),
			CloverAPIToken: v.GetString("integrations.clover_api_token"),

			BigCommerceBaseURL:   v.GetString("integrations.bigcommerce_base_url"),
			BigCommerceStoreHash: v.GetString("integrations.bigcommerce_store_hash"),
			BigCommerceToken:     v.GetString("integrations.bigcommerce_access_token"),

			AmazonBaseURL:      v.GetString("integrations.amazon_base_url"),
			AmazonAuthURL:      v.GetString("integrations.amazon_auth_url"),
			AmazonSellerID:     v.GetString("integrations.amazon_seller_id"),
			AmazonClientID:     v.GetString("integrations.amazon_client_id"),
			AmazonClientSecret: v.GetString("integrations.amazon_client_secret"),
			AmazonRefreshToken: v.GetString("integrations.amazon_refresh_token"),
			ShippoBaseURL:      v.GetString("integrations.shippo_base_url"),
			ShippoToken:        v.GetString("integrations.shippo_token"),
			PiAPIBaseURL:       v.GetString("integrations.piapi_base_url"),
			PiAPIKey:           v.GetString("integrations.piapi_key"),
			OpenAIBaseURL:      v.GetString("integrations.openai_base_url"),
			OpenAIKey:          v.GetString("integrations.openai_key"),
			OpenAITTSModel:     v.GetString("integrations.openai_tts_model"),
			OpenAITTSVoice:     v.GetString("integrations.openai_tts_voice"),
		},
		Swagger: SwaggerConfig{
			Enabled:     v.GetBool("swagger.enabled"),
			RequireAuth: v.GetBool("swagger.require_auth"),
			AllowedIPs:  v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pinehill-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "pinehill"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 15 * time.Minute
	}
	if cfg.JWT.RefreshTokenExpiration == 0 {
		cfg.JWT.RefreshTokenExpiration = 168 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "pinehill-backend"
	}
	if cfg.JWT.MaxRefreshCount == 0 {
		cfg.JWT.MaxRefreshCount = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Sync.OrderInterval == 0 {
		cfg.Sync.OrderInterval = 15 * time.Minute
	}
	if cfg.Sync.InventoryInterval == 0 {
		cfg.Sync.InventoryInterval = 30 * time.Minute
	}
	if cfg.Sync.WindowEndHour == 0 {
		cfg.Sync.WindowEndHour = 24
	}
	if cfg.Sync.Lookback == 0 {
		cfg.Sync.Lookback = time.Hour
	}
	if cfg.Video.PollInterval == 0 {
		cfg.Video.PollInterval = 10 * time.Second
	}
	if cfg.Video.MaxPollAttempt == 0 {
		cfg.Video.MaxPollAttempt = 60
	}
	if cfg.Video.ChunkSeconds == 0 {
		cfg.Video.ChunkSeconds = 20
	}
	if cfg.Video.FFmpegPath == "" {
		cfg.Video.FFmpegPath = "ffmpeg"
	}
	if cfg.Video.WorkDir == "" {
		cfg.Video.WorkDir = "/tmp/pinehill-video"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiry == 0 {
		cfg.Storage.PresignExpiry = time.Hour
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "Pine Hill Farm"
	}
	if cfg.Integrations.CloverBaseURL == "" {
		cfg.Integrations.CloverBaseURL = "https://api.clover.com"
	}
	if cfg.Integrations.BigCommerceBaseURL == "" {
		cfg.Integrations.BigCommerceBaseURL = "https://api.bigcommerce.com"
	}
	if cfg.Integrations.AmazonBaseURL == "" {
		cfg.Integrations.AmazonBaseURL = "https://sellingpartnerapi-na.amazon.com"
	}
	if cfg.Integrations.AmazonAuthURL == "" {
		cfg.Integrations.AmazonAuthURL = "https://api.amazon.com/auth/o2/token"
	}
	if cfg.Integrations.ShippoBaseURL == "" {
		cfg.Integrations.ShippoBaseURL = "https://api.goshippo.com"
	}
	if cfg.Integrations.PiAPIBaseURL == "" {
		cfg.Integrations.PiAPIBaseURL = "https://api.piapi.ai"
	}
	if cfg.Integrations.OpenAIBaseURL == "" {
		cfg.Integrations.OpenAIBaseURL = "https://api.openai.com"
	}
	if cfg.Integrations.OpenAITTSModel == "" {
		cfg.Integrations.OpenAITTSModel = "tts-1"
	}
	if cfg.Integrations.OpenAITTSVoice == "" {
		cfg.Integrations.OpenAITTSVoice = "alloy"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "pinehill-backend"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Sync.WindowStartHour < 0 || c.Sync.WindowStartHour > 24 {
		return fmt.Errorf("sync.window_start_hour must be between 0 and 24")
	}
	if c.Sync.WindowEndHour < 0 || c.Sync.WindowEndHour > 24 {
		return fmt.Errorf("sync.window_end_hour must be between 0 and 24")
	}
	if c.Video.MaxPollAttempt < 1 {
		return fmt.Errorf("video.max_poll_attempts must be positive")
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Gemini   GeminiConfig
	Matching MatchingConfig
	Ledger   LedgerConfig
	Chat     ChatConfig
	CORS     CORSConfig
	Seed     SeedConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	SeedOnBoot  bool
}

type LogConfig struct {
	Level string
	JSON  bool
}

type DatabaseConfig struct {
	Driver     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrateOnBoot bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis host was configured at all.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type MatchingConfig struct {
	SkillWeight    float64
	InterestWeight float64
	Eligibility    string
	FallbackSize   int
	MaxResults     int
}

type LedgerConfig struct {
	EnforceCapacity bool
}

type ChatConfig struct {
	MaxQueryLength int
	RateLimit      int
	RateWindow     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment and, when path is non-empty,
// from the given config file. Environment variables win over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, strings.ToUpper(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     req("app_name"),
		Environment: req("app_env"),
		HTTPPort:    req("http_port"),
		SeedOnBoot:  v.GetBool("seed_on_boot"),
	}

	cfg.Log = LogConfig{
		Level: opt("log_level"),
		JSON:  v.GetBool("log_json"),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(opt("db_driver")),
		ConnectTimeout:        v.GetDuration("db_connect_timeout"),
		PoolMaxConns:          v.GetInt32("db_pool_max_conns"),
		PoolMinConns:          v.GetInt32("db_pool_min_conns"),
		PoolMaxConnLifetime:   v.GetDuration("db_pool_max_conn_lifetime"),
		PoolMaxConnIdleTime:   v.GetDuration("db_pool_max_conn_idle_time"),
		PoolHealthCheckPeriod: v.GetDuration("db_pool_health_check_period"),
		MigrateOnBoot:         v.GetBool("db_migrate_on_boot"),
	}
	switch cfg.Database.Driver {
	case DriverPostgres:
		cfg.Database.DBHost = req("db_host")
		cfg.Database.DBPort = req("db_port")
		cfg.Database.DBName = req("db_name")
		cfg.Database.DBUser = req("db_user")
		cfg.Database.DBPassword = opt("db_password")
		cfg.Database.DBSSLMode = opt("db_ssl_mode")
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("jwt_access_secret"),
		RefreshSecret:    req("jwt_refresh_secret"),
		AccessExpiresIn:  v.GetDuration("jwt_access_expires_in"),
		RefreshExpiresIn: v.GetDuration("jwt_refresh_expires_in"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("redis_host"),
		Port:     opt("redis_port"),
		Password: opt("redis_password"),
		DB:       v.GetInt("redis_db"),
		TTL:      v.GetDuration("redis_ttl"),
	}

	cfg.RabbitMQ = RabbitMQConfig{
		URL:      opt("rabbitmq_url"),
		Exchange: opt("rabbitmq_exchange"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey: opt("gemini_api_key"),
		Model:  opt("gemini_model"),
	}

	cfg.Matching = MatchingConfig{
		SkillWeight:    v.GetFloat64("match_skill_weight"),
		InterestWeight: v.GetFloat64("match_interest_weight"),
		Eligibility:    strings.ToLower(opt("match_eligibility")),
		FallbackSize:   v.GetInt("match_fallback_size"),
		MaxResults:     v.GetInt("match_max_results"),
	}

	cfg.Ledger = LedgerConfig{
		EnforceCapacity: v.GetBool("ledger_enforce_capacity"),
	}

	cfg.Chat = ChatConfig{
		MaxQueryLength: v.GetInt("chat_max_query_length"),
		RateLimit:      v.GetInt("chat_rate_limit"),
		RateWindow:     v.GetDuration("chat_rate_window"),
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
	}

	cfg.Seed = SeedConfig{
		AdminName:     opt("seed_admin_name"),
		AdminEmail:    opt("seed_admin_email"),
		AdminPassword: opt("seed_admin_password"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "intern-match")
	v.SetDefault("app_env", "development")
	v.SetDefault("http_port", "3001")
	v.SetDefault("seed_on_boot", false)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_connect_timeout", "5s")
	v.SetDefault("db_pool_max_conns", 10)
	v.SetDefault("db_migrate_on_boot", true)

	v.SetDefault("jwt_access_expires_in", "15m")
	v.SetDefault("jwt_refresh_expires_in", "168h")

	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_ttl", "10m")

	v.SetDefault("rabbitmq_exchange", "intern_match.events")

	v.SetDefault("gemini_model", "gemini-2.5-flash")

	v.SetDefault("match_skill_weight", 0.6)
	v.SetDefault("match_interest_weight", 0.4)
	v.SetDefault("match_eligibility", "at_least")
	v.SetDefault("match_fallback_size", 5)
	v.SetDefault("match_max_results", 50)

	v.SetDefault("ledger_enforce_capacity", false)

	v.SetDefault("chat_max_query_length", 1000)
	v.SetDefault("chat_rate_limit", 20)
	v.SetDefault("chat_rate_window", "1m")

	v.SetDefault("seed_admin_name", "Admin User")
	v.SetDefault("seed_admin_email", "admin@example.com")

	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

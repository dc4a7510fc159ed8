package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr devuelve ":<port>".
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	// Vacío => storage in-memory (modo dev).
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	// Vacío => cache in-memory.
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	MaxKeys int           `mapstructure:"max_keys"`
	Channel string        `mapstructure:"channel"`
}

type AuthConfig struct {
	// Vacío => modo dev con headers X-Debug-User-ID / X-Debug-Role.
	IdentityURL    string        `mapstructure:"identity_url"`
	IdentityAPIKey string        `mapstructure:"identity_api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	ApplicantWritesPerMin int `mapstructure:"applicant_writes_per_min"`
}

type NotifyConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	FromEmail string `mapstructure:"from_email"`
}

// Load lee config.yaml (./config, .), .env si existe y variables SHELTER_*.
// Ej: SHELTER_DATABASE_DSN, SHELTER_HTTP_PORT.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env es opcional

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHELTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// compat con el DB_DSN histórico
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = strings.TrimSpace(os.Getenv("DB_DSN"))
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "animal-shelter")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", 2*time.Minute)
	v.SetDefault("cache.max_keys", 512)
	v.SetDefault("cache.channel", "shelter:revalidate")

	v.SetDefault("auth.identity_url", "")
	v.SetDefault("auth.identity_api_key", "")
	v.SetDefault("auth.timeout", 5*time.Second)

	v.SetDefault("rate_limit.applicant_writes_per_min", 30)

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_email", "")
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", cfg.HTTP.Port)
	}
	if cfg.Auth.IdentityURL != "" && cfg.Auth.IdentityAPIKey == "" {
		return fmt.Errorf("auth.identity_api_key required when auth.identity_url is set")
	}
	if cfg.Notify.Enabled && strings.TrimSpace(cfg.Notify.FromEmail) == "" {
		return fmt.Errorf("notify.from_email required when notify.enabled")
	}
	if cfg.RateLimit.ApplicantWritesPerMin < 0 {
		return fmt.Errorf("rate_limit.applicant_writes_per_min must be >= 0")
	}
	return nil
}

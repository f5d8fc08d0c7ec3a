package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string        `mapstructure:"APP_ENV"`
	ServerPort     string        `mapstructure:"SERVER_PORT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	JWTSecretKey      string        `mapstructure:"JWT_SECRET_KEY"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER"`
	JWTExpirationTime time.Duration `mapstructure:"JWT_EXPIRATION_TIME"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MQUser     string `mapstructure:"MQ_USER"`
	MQPassword string `mapstructure:"MQ_PASSWORD"`
	MQHost     string `mapstructure:"MQ_HOST"`
	MQPort     string `mapstructure:"MQ_PORT"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`

	JaegerEndpoint string `mapstructure:"JAEGER_ENDPOINT"`

	AdminEmails     string `mapstructure:"ADMIN_EMAILS"`
	PostMaxLength   int    `mapstructure:"POST_MAX_LENGTH"`
	TrendingLimit   int    `mapstructure:"TRENDING_LIMIT"`
	RateLimitPosts  int    `mapstructure:"RATE_LIMIT_POSTS"`
	RateLimitSearch int    `mapstructure:"RATE_LIMIT_SEARCH"`
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	configureViper(v)
	if err := readConfiguration(v); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.applyFallbacks()
	return &cfg, nil
}

// applyFallbacks fills zero values left by an env var that was set but empty.
func (cfg *Config) applyFallbacks() {
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "your_fallback_secret_key_change_in_production"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "linkedin_clone"
	}
	if cfg.JWTExpirationTime == 0 {
		cfg.JWTExpirationTime = time.Hour * 24
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.PostMaxLength <= 0 {
		cfg.PostMaxLength = 3000
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = 8
	}
	if cfg.RedisHost == "" {
		cfg.RedisHost = "localhost"
	}
	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (cfg *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range strings.Split(cfg.AdminEmails, ",") {
		if strings.ToLower(strings.TrimSpace(e)) == email {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "linkedin_clone")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")

	v.SetDefault("JWT_SECRET_KEY", "your_fallback_secret_key_change_in_production")
	v.SetDefault("JWT_ISSUER", "linkedin_clone")
	v.SetDefault("JWT_EXPIRATION_TIME", "24h")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", "0")

	v.SetDefault("MQ_USER", "guest")
	v.SetDefault("MQ_PASSWORD", "guest")
	v.SetDefault("MQ_HOST", "localhost")
	v.SetDefault("MQ_PORT", "5672")

	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_PUBLIC_URL", "http://localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "avatars")

	v.SetDefault("JAEGER_ENDPOINT", "")

	v.SetDefault("ADMIN_EMAILS", "admin@linkedin.com")
	v.SetDefault("POST_MAX_LENGTH", 3000)
	v.SetDefault("TRENDING_LIMIT", 8)
	v.SetDefault("RATE_LIMIT_POSTS", 30)
	v.SetDefault("RATE_LIMIT_SEARCH", 60)
}

func configureViper(v *viper.Viper) {
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func readConfiguration(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Warning: .env file not found, using defaults and system env")
			return nil
		}
		return fmt.Errorf("config file error: %w", err)
	}
	fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	return nil
}

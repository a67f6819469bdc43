package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/quizbank-backend/internal/clients/redis"
	"github.com/yungbote/quizbank-backend/internal/data/db"
	"github.com/yungbote/quizbank-backend/internal/observability"
	"github.com/yungbote/quizbank-backend/internal/platform/envutil"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	CORSOrigins    []string
	PDFBanner      bool

	DB    db.Config
	Redis redis.Config
	Otel  observability.OtelConfig
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE.
type fileConfig struct {
	Port           string   `yaml:"port"`
	JWTSecretKey   string   `yaml:"jwt_secret_key"`
	AccessTokenTTL int      `yaml:"access_token_ttl"`
	CORSOrigins    []string `yaml:"cors_origins"`
	PDFBanner      bool     `yaml:"pdf_banner"`

	Database struct {
		Driver     string `yaml:"driver"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Otel struct {
		Enabled     bool    `yaml:"enabled"`
		Environment string  `yaml:"environment"`
		SampleRatio float64 `yaml:"sample_ratio"`
		Endpoint    string  `yaml:"endpoint"`
		Insecure    bool    `yaml:"insecure"`
	} `yaml:"otel"`
}

func readConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// LoadConfig layers environment variables over the optional YAML file over
// built-in defaults.
func LoadConfig(log *logger.Logger) (Config, error) {
	fc, err := readConfigFile(envutil.String("CONFIG_FILE", "", log))
	if err != nil {
		return Config{}, err
	}

	secret := envutil.String("JWT_SECRET_KEY", envutil.String("PRIVATE_KEY", fc.JWTSecretKey, log), log)
	if secret == "" {
		log.Warn("JWT secret not configured, using development default")
		secret = defaultJWTSecret
	}
	ttlSeconds := fc.AccessTokenTTL
	if ttlSeconds <= 0 {
		ttlSeconds = 86400
	}
	ttlSeconds = envutil.Int("ACCESS_TOKEN_TTL", ttlSeconds, log)

	sampleRatio := fc.Otel.SampleRatio
	if sampleRatio == 0 {
		sampleRatio = 0.1
	}
	if raw := envutil.String("OTEL_SAMPLER_RATIO", "", log); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			sampleRatio = f
		}
	}

	return Config{
		Port:           envutil.String("PORT", orDefault(fc.Port, "8080"), log),
		JWTSecretKey:   secret,
		AccessTokenTTL: time.Duration(ttlSeconds) * time.Second,
		CORSOrigins:    envutil.List("CORS_ORIGINS", fc.CORSOrigins),
		PDFBanner:      envutil.Bool("PDF_BANNER", fc.PDFBanner),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", orDefault(fc.Database.Driver, db.DriverPostgres), log),
			PostgresHost:     envutil.String("POSTGRES_HOST", orDefault(fc.Database.Host, "localhost"), log),
			PostgresPort:     envutil.String("POSTGRES_PORT", orDefault(fc.Database.Port, "5432"), log),
			PostgresUser:     envutil.String("POSTGRES_USER", orDefault(fc.Database.User, "postgres"), log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", fc.Database.Password, log),
			PostgresName:     envutil.String("POSTGRES_NAME", orDefault(fc.Database.Name, "quizbank"), log),
			SQLitePath:       envutil.String("SQLITE_PATH", orDefault(fc.Database.SQLitePath, "quizbank.db"), log),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", fc.Redis.Addr, log),
			Password: envutil.String("REDIS_PASSWORD", fc.Redis.Password, log),
			DB:       envutil.Int("REDIS_DB", fc.Redis.DB, log),
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", fc.Otel.Enabled),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", observability.DefaultServiceName, log),
			Environment: envutil.String("APP_ENV", fc.Otel.Environment, log),
			Version:     envutil.String("APP_VERSION", "", log),
			SampleRatio: sampleRatio,
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", fc.Otel.Endpoint, log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", fc.Otel.Insecure),
		},
	}, nil
}

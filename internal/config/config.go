package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultAddress         = ":3000"
	defaultTimeout         = 30
	defaultExternalTimeout = 10
	defaultCacheDB         = 0
	defaultJWTHours        = 24
	defaultMaxUploadMB     = 20
	defaultUploadDir       = "./uploads"
	defaultUploadURLPrefix = "/uploads"
	defaultMinioRegion     = "us-east-1"
	defaultVerifiedTTLMin  = 24 * 60
	defaultSubmissionQuota = 5
)

// Config holds everything the server needs at startup.
type Config struct {
	Address         string
	ContextTimeout  time.Duration
	ExternalTimeout time.Duration
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string

	DatabaseURL string
	Cache       CacheConfig

	JWTSecret string
	JWTTTL    time.Duration

	Minio           MinioConfig
	UploadDir       string
	UploadURLPrefix string
	MaxUploadBytes  int64
	SubmissionQuota int

	Telegram TelegramConfig
	OTP      OTPConfig

	LikesRequireOTP bool
	VerifiedTTL     time.Duration
}

// CacheConfig configures the redis connection.
type CacheConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or empty when redis is not configured.
func (c CacheConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

// MinioConfig configures the primary object store. Empty Endpoint disables it.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	PublicURL string
	UseSSL    bool
}

// Enabled reports whether enough is set to talk to the object store.
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

// EndpointURL returns the endpoint with a scheme.
func (m MinioConfig) EndpointURL() string {
	if strings.HasPrefix(m.Endpoint, "http://") || strings.HasPrefix(m.Endpoint, "https://") {
		return m.Endpoint
	}
	if m.UseSSL {
		return "https://" + m.Endpoint
	}
	return "http://" + m.Endpoint
}

// TelegramConfig configures the notification bot.
type TelegramConfig struct {
	Token  string
	ChatID string
}

// OTPConfig configures the OTP provider.
type OTPConfig struct {
	Domain     string
	ServGUID   string
	AppGUID    string
	SystemName string
}

// BaseURL is <domain>/rest/<servGuid>/<appGuid>.
func (o OTPConfig) BaseURL() string {
	return fmt.Sprintf("%s/rest/%s/%s", strings.TrimRight(o.Domain, "/"), o.ServGUID, o.AppGUID)
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("failed to load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Address:         getString("SERVER_ADDRESS", defaultAddress),
		ContextTimeout:  time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		ExternalTimeout: time.Duration(getInt("EXTERNAL_TIMEOUT", defaultExternalTimeout)) * time.Second,
		LogLevel:        getString("LOG_LEVEL", "info"),
		LogFormat:       getString("LOG_FORMAT", "text"),
		CORSOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Cache: CacheConfig{
			Host:     os.Getenv("CACHE_HOST"),
			Port:     os.Getenv("CACHE_PORT"),
			Password: os.Getenv("CACHE_PASS"),
			DB:       getInt("CACHE_DB", defaultCacheDB),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    time.Duration(getInt("JWT_EXPIRE_HOURS", defaultJWTHours)) * time.Hour,
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    os.Getenv("MINIO_BUCKET"),
			Region:    getString("MINIO_REGION", defaultMinioRegion),
			PublicURL: os.Getenv("MINIO_PUBLIC_URL"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
		UploadDir:       getString("UPLOAD_DIR", defaultUploadDir),
		UploadURLPrefix: getString("UPLOAD_URL_PREFIX", defaultUploadURLPrefix),
		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_MB", defaultMaxUploadMB)) << 20,
		SubmissionQuota: getInt("SUBMISSION_QUOTA", defaultSubmissionQuota),
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_TOKEN"),
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		},
		OTP: OTPConfig{
			Domain:     os.Getenv("OTP_API_DOMAIN"),
			ServGUID:   os.Getenv("OTP_API_SERV_GUID"),
			AppGUID:    os.Getenv("OTP_API_APP_GUID"),
			SystemName: os.Getenv("OTP_API_SYSTEM_NAME"),
		},
		LikesRequireOTP: getBool("LIKES_REQUIRE_OTP", false),
		VerifiedTTL:     time.Duration(getInt("OTP_VERIFIED_TTL_MINUTES", defaultVerifiedTTLMin)) * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = mysqlDSNFromEnv()
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or DATABASE_HOST must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// mysqlDSNFromEnv builds a MySQL DSN from the DATABASE_* variables.
func mysqlDSNFromEnv() string {
	host := os.Getenv("DATABASE_HOST")
	if host == "" {
		return ""
	}
	port := getString("DATABASE_PORT", "3306")

	dsn := mysqldriver.NewConfig()
	dsn.User = os.Getenv("DATABASE_USER")
	dsn.Passwd = os.Getenv("DATABASE_PASS")
	dsn.Net = "tcp"
	dsn.Addr = host + ":" + port
	dsn.DBName = os.Getenv("DATABASE_NAME")
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return "mysql://" + dsn.FormatDSN()
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %t", key, def)
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

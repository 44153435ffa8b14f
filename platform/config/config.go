// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides document store connection settings.
type DatabaseConfig interface {
	GetMongoURI() string
	GetMongoDatabase() string
	GetMongoMaxPoolSize() uint64
	GetMongoServerSelectionTimeout() time.Duration
	GetMongoSocketTimeout() time.Duration
}

// SessionConfig provides session token signing settings.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetSessionRenewAfter() time.Duration
}

// CookieConfig provides settings for the session cookie.
type CookieConfig interface {
	GetSessionCookieName() string
	GetSessionCookieDomain() string
	GetSessionCookieSecure() bool
	GetSessionCookieSameSite() http.SameSite
	GetSessionTTL() time.Duration
}

// GoogleConfig provides federated sign-in settings.
type GoogleConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	IsGoogleEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// WebConfig provides settings for serving the page shell.
type WebConfig interface {
	GetWebDistDir() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// SchedulerConfig provides settings for background job processing.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// MinIOConfig provides settings for S3-compatible image storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOBucketCatalogImages() string
	GetMinIOPublicBaseURL() string
	IsMinIOEnabled() bool
}

// RateLimitConfig provides settings for the attempt limiter.
type RateLimitConfig interface {
	GetRateLimitStore() string
	GetRateLimitMax() int
	GetRateLimitWindow() time.Duration
}

// LogConfig provides settings for the optional log file sink.
type LogConfig interface {
	GetLogFile() string
	GetLogFileMaxMB() int
	GetLogFileMaxBackups() int
	GetLogFileMaxAgeDays() int
}

// PhoneConfig provides the region used to parse national phone numbers.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// Rate limit store backends.
const (
	RateLimitStoreMongo = "mongo"
	RateLimitStoreRedis = "redis"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                         string
	HTTPAddr                    string
	MongoURI                    string
	MongoDatabase               string
	MongoMaxPoolSize            uint64
	MongoServerSelectionTimeout time.Duration
	MongoSocketTimeout          time.Duration
	SessionSecret               string
	SessionTTL                  time.Duration
	SessionRenewAfter           time.Duration
	SessionCookieName           string
	SessionCookieDomain         string
	SessionCookieSecure         bool
	SessionCookieSameSite       http.SameSite
	GoogleClientID              string
	GoogleClientSecret          string
	CORSAllowAll                bool
	CORSOrigins                 []string
	CORSAllowCreds              bool
	WebDistDir                  string
	AppBaseURL                  string
	EmailEnabled                bool
	SMTPHost                    string
	SMTPPort                    int
	SMTPUsername                string
	SMTPPassword                string
	EmailFromName               string
	EmailFromAddress            string
	RedisURL                    string
	RedisTLSInsecure            bool
	AsynqQueueName              string
	AsynqConcurrency            int
	MinIOEndpoint               string
	MinIOAccessKey              string
	MinIOSecretKey              string
	MinIOUseSSL                 bool
	MinIOMaxFileSize            int64
	MinIOBucketCatalogImages    string
	MinIOPublicBaseURL          string
	RateLimitStore              string
	RateLimitMax                int
	RateLimitWindow             time.Duration
	LogFile                     string
	LogFileMaxMB                int
	LogFileMaxBackups           int
	LogFileMaxAgeDays           int
	PhoneDefaultRegion          string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetMongoURI() string                           { return c.MongoURI }
func (c *Config) GetMongoDatabase() string                      { return c.MongoDatabase }
func (c *Config) GetMongoMaxPoolSize() uint64                   { return c.MongoMaxPoolSize }
func (c *Config) GetMongoServerSelectionTimeout() time.Duration { return c.MongoServerSelectionTimeout }
func (c *Config) GetMongoSocketTimeout() time.Duration          { return c.MongoSocketTimeout }

// SessionConfig implementation
func (c *Config) GetSessionSecret() string            { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration        { return c.SessionTTL }
func (c *Config) GetSessionRenewAfter() time.Duration { return c.SessionRenewAfter }

// CookieConfig implementation
func (c *Config) GetSessionCookieName() string            { return c.SessionCookieName }
func (c *Config) GetSessionCookieDomain() string          { return c.SessionCookieDomain }
func (c *Config) GetSessionCookieSecure() bool            { return c.SessionCookieSecure }
func (c *Config) GetSessionCookieSameSite() http.SameSite { return c.SessionCookieSameSite }

// GoogleConfig implementation
func (c *Config) GetGoogleClientID() string     { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string { return c.GoogleClientSecret }
func (c *Config) IsGoogleEnabled() bool         { return c.GoogleClientID != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// WebConfig implementation
func (c *Config) GetWebDistDir() string { return c.WebDistDir }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string            { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string           { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string           { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool                { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64          { return c.MinIOMaxFileSize }
func (c *Config) GetMinIOBucketCatalogImages() string { return c.MinIOBucketCatalogImages }
func (c *Config) GetMinIOPublicBaseURL() string       { return c.MinIOPublicBaseURL }
func (c *Config) IsMinIOEnabled() bool                { return c.MinIOEndpoint != "" }

// RateLimitConfig implementation
func (c *Config) GetRateLimitStore() string          { return c.RateLimitStore }
func (c *Config) GetRateLimitMax() int               { return c.RateLimitMax }
func (c *Config) GetRateLimitWindow() time.Duration  { return c.RateLimitWindow }

// LogConfig implementation
func (c *Config) GetLogFile() string        { return c.LogFile }
func (c *Config) GetLogFileMaxMB() int      { return c.LogFileMaxMB }
func (c *Config) GetLogFileMaxBackups() int { return c.LogFileMaxBackups }
func (c *Config) GetLogFileMaxAgeDays() int { return c.LogFileMaxAgeDays }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cookieSecure := strings.EqualFold(getEnv("SESSION_COOKIE_SECURE", ""), "true")
	if getEnv("SESSION_COOKIE_SECURE", "") == "" {
		cookieSecure = strings.EqualFold(env, "production")
	}

	cfg := &Config{
		Env:                         env,
		HTTPAddr:                    getEnv("HTTP_ADDR", ":8080"),
		MongoURI:                    getEnv("MONGODB_URI", ""),
		MongoDatabase:               getEnv("MONGODB_DATABASE", "travelnest"),
		MongoMaxPoolSize:            uint64(mustInt64(getEnv("MONGODB_MAX_POOL_SIZE", "10"))),
		MongoServerSelectionTimeout: mustDuration(getEnv("MONGODB_SERVER_SELECTION_TIMEOUT", "10s")),
		MongoSocketTimeout:          mustDuration(getEnv("MONGODB_SOCKET_TIMEOUT", "45s")),
		SessionSecret:               getEnv("SESSION_SECRET", ""),
		SessionTTL:                  mustDuration(getEnv("SESSION_TTL", "720h")),
		SessionRenewAfter:           mustDuration(getEnv("SESSION_RENEW_AFTER", "24h")),
		SessionCookieName:           getEnv("SESSION_COOKIE_NAME", "travelnest_session"),
		SessionCookieDomain:         getEnv("SESSION_COOKIE_DOMAIN", ""),
		SessionCookieSecure:         cookieSecure,
		SessionCookieSameSite:       parseSameSite(getEnv("SESSION_COOKIE_SAMESITE", "Lax")),
		GoogleClientID:              getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:          getEnv("GOOGLE_CLIENT_SECRET", ""),
		CORSAllowAll:                corsAllowAll,
		CORSOrigins:                 corsOrigins,
		CORSAllowCreds:              strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		WebDistDir:                  getEnv("WEB_DIST_DIR", ""),
		AppBaseURL:                  getEnv("APP_BASE_URL", "http://localhost:3000"),
		EmailEnabled:                strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true"),
		SMTPHost:                    getEnv("SMTP_HOST", ""),
		SMTPPort:                    int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:                getEnv("SMTP_USERNAME", ""),
		SMTPPassword:                getEnv("SMTP_PASSWORD", ""),
		EmailFromName:               getEnv("EMAIL_FROM_NAME", "TravelNest"),
		EmailFromAddress:            getEnv("EMAIL_FROM_ADDRESS", ""),
		RedisURL:                    getEnv("REDIS_URL", ""),
		RedisTLSInsecure:            strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:              getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:            int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "10"))),
		MinIOEndpoint:               getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:              getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:              getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:                 strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:            mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinIOBucketCatalogImages:    getEnv("MINIO_BUCKET_CATALOG_IMAGES", "catalog-images"),
		MinIOPublicBaseURL:          getEnv("MINIO_PUBLIC_BASE_URL", ""),
		RateLimitStore:              strings.ToLower(getEnv("RATE_LIMIT_STORE", RateLimitStoreMongo)),
		RateLimitMax:                int(mustInt64(getEnv("RATE_LIMIT_MAX", "5"))),
		RateLimitWindow:             mustDuration(getEnv("RATE_LIMIT_WINDOW", "1m")),
		LogFile:                     getEnv("LOG_FILE", ""),
		LogFileMaxMB:                int(mustInt64(getEnv("LOG_FILE_MAX_MB", "100"))),
		LogFileMaxBackups:           int(mustInt64(getEnv("LOG_FILE_MAX_BACKUPS", "5"))),
		LogFileMaxAgeDays:           int(mustInt64(getEnv("LOG_FILE_MAX_AGE_DAYS", "28"))),
		PhoneDefaultRegion:          strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "IN")),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if cfg.EmailEnabled && (cfg.SMTPHost == "" || cfg.EmailFromAddress == "") {
		return nil, fmt.Errorf("SMTP_HOST and EMAIL_FROM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	switch cfg.RateLimitStore {
	case RateLimitStoreMongo:
	case RateLimitStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when RATE_LIMIT_STORE is redis")
		}
	default:
		return nil, fmt.Errorf("RATE_LIMIT_STORE must be %q or %q", RateLimitStoreMongo, RateLimitStoreRedis)
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

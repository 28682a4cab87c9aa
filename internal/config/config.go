package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
	Auth      AuthConfig
	MinIO     MinIOConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// MongoDBConfig: an empty URI runs the service on the in-memory store.
type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type RateLimitConfig struct {
	Enabled  bool
	RPS      float64
	Burst    int
	UseRedis bool
	Window   time.Duration
}

type AnalyticsConfig struct {
	CacheTTL time.Duration
}

type AuthConfig struct {
	KeycloakURL        string
	KeycloakRealm      string
	KeycloakClientID   string
	KeycloakAdminRole  string
	AdminJWTSecret     string
	AdminTokenTTL      time.Duration
	AllowInsecureToken bool
}

// Issuer returns the Keycloak realm issuer URL, or "" when OIDC is not configured.
func (a AuthConfig) Issuer() string {
	if a.KeycloakURL == "" || a.KeycloakClientID == "" {
		return ""
	}
	if a.KeycloakRealm == "" {
		return a.KeycloakURL
	}
	return strings.TrimRight(a.KeycloakURL, "/") + "/realms/" + a.KeycloakRealm
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Bucket     string
	PresignTTL time.Duration
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("MONGODB_DATABASE", "feedback_portal")
	v.SetDefault("MONGODB_COLLECTION", "feedbacks")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("ANALYTICS_CACHE_TTL", 60)
	v.SetDefault("ADMIN_TOKEN_TTL", 480)
	v.SetDefault("ALLOW_INSECURE_TOKEN", false)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_BUCKET", "feedback-exports")
	v.SetDefault("MINIO_PRESIGN_TTL", 15)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			Environment:    v.GetString("SERVER_ENVIRONMENT"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			ReadTimeout:    time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout:   time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		MongoDB: MongoDBConfig{
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("MONGODB_DATABASE"),
			Collection: v.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:      v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    v.GetInt("RATE_LIMIT_BURST"),
			UseRedis: v.GetBool("RATE_LIMIT_USE_REDIS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Analytics: AnalyticsConfig{
			CacheTTL: time.Duration(v.GetInt("ANALYTICS_CACHE_TTL")) * time.Second,
		},
		Auth: AuthConfig{
			KeycloakURL:        v.GetString("KEYCLOAK_URL"),
			KeycloakRealm:      v.GetString("KEYCLOAK_REALM"),
			KeycloakClientID:   v.GetString("KEYCLOAK_CLIENT_ID"),
			KeycloakAdminRole:  v.GetString("KEYCLOAK_ADMIN_ROLE"),
			AdminJWTSecret:     v.GetString("ADMIN_JWT_SECRET"),
			AdminTokenTTL:      time.Duration(v.GetInt("ADMIN_TOKEN_TTL")) * time.Minute,
			AllowInsecureToken: v.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		MinIO: MinIOConfig{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			Bucket:     v.GetString("MINIO_BUCKET"),
			PresignTTL: time.Duration(v.GetInt("MINIO_PRESIGN_TTL")) * time.Minute,
		},
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

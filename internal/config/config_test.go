package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("KEYCLOAK_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Server.Port)
	require.Empty(t, cfg.MongoDB.URI)
	require.Equal(t, "feedbacks", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, time.Minute, cfg.Analytics.CacheTTL)
	require.Empty(t, cfg.Redis.Addr())
	require.Empty(t, cfg.Auth.Issuer())
	require.Equal(t, "feedback-exports", cfg.MinIO.Bucket)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "portal_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://portal.example.com")
	t.Setenv("ANALYTICS_CACHE_TTL", "5")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("KEYCLOAK_URL", "http://kc:8080/")
	t.Setenv("KEYCLOAK_REALM", "portal")
	t.Setenv("KEYCLOAK_CLIENT_ID", "dashboard")
	t.Setenv("KEYCLOAK_ADMIN_ROLE", "feedback-admin")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "portal_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, []string{"http://localhost:5173", "https://portal.example.com"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.Analytics.CacheTTL)
	require.Equal(t, 0.5, cfg.RateLimit.RPS)
	require.True(t, cfg.RateLimit.UseRedis)
	require.Equal(t, "http://kc:8080/realms/portal", cfg.Auth.Issuer())
	require.Equal(t, "feedback-admin", cfg.Auth.KeycloakAdminRole)
}

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nyaysathi.in/web/internal/chat"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	require.Equal(t, "local", cfg.Web.Environment)
	require.False(t, cfg.Web.DevMode)
	require.Equal(t, "templates", cfg.Web.TemplatesDir)
	require.Equal(t, "en", cfg.Web.DefaultLocale)
	require.Equal(t, 2*time.Second, cfg.Chat.ReplyDelay)
	require.Equal(t, chat.PolicyRejectWhilePending, cfg.Chat.SendPolicy)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.Session.Secure)
}

func TestLoadEnvMapOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("NYAYSATHI_WEB_PORT=9000\nNYAYSATHI_CHAT_REPLY_DELAY=5s\n"), 0o600))

	cfg, err := Load(context.Background(),
		WithoutSystemEnv(),
		WithEnvFile(envPath),
		WithEnvMap(map[string]string{
			"NYAYSATHI_CHAT_REPLY_DELAY": "750ms",
			"NYAYSATHI_CHAT_SEND_POLICY": "overlap",
			"NYAYSATHI_DEFAULT_LOCALE":   "HI",
			"NYAYSATHI_WEB_DEV":          "true",
		}),
	)
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, 750*time.Millisecond, cfg.Chat.ReplyDelay)
	require.Equal(t, chat.PolicyOverlap, cfg.Chat.SendPolicy)
	require.Equal(t, "hi", cfg.Web.DefaultLocale)
	require.True(t, cfg.Web.DevMode)
}

func TestLoadFallsBackToPlatformPort(t *testing.T) {
	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""),
		WithEnvMap(map[string]string{"PORT": "3000"}))
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(context.Background(), WithoutSystemEnv(),
		WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)
}

func TestLoadValidationErrors(t *testing.T) {
	_, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""),
		WithEnvMap(map[string]string{
			"NYAYSATHI_CHAT_REPLY_DELAY": "soon",
			"NYAYSATHI_CHAT_SEND_POLICY": "queue",
			"NYAYSATHI_DEFAULT_LOCALE":   "fr",
			"NYAYSATHI_WEB_ENV":          "prod",
		}))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.ElementsMatch(t, []string{
		"NYAYSATHI_CHAT_REPLY_DELAY",
		"NYAYSATHI_CHAT_SEND_POLICY",
		"NYAYSATHI_DEFAULT_LOCALE",
		"NYAYSATHI_SESSION_SIGNING_KEY",
	}, vErr.Fields())
}

func TestLoadRejectsNonPositiveReplyDelay(t *testing.T) {
	_, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""),
		WithEnvMap(map[string]string{"NYAYSATHI_CHAT_REPLY_DELAY": "0s"}))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []string{"NYAYSATHI_CHAT_REPLY_DELAY"}, vErr.Fields())
}

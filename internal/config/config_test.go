package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupConfigEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("TMUX_ALERT_CONFIG_PATH", "")
	t.Cleanup(reset)
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupConfigEnv(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "Cancel", Get("cancel_title", ""))
	require.Equal(t, "(%lus)", Get("countdown_format", ""))
	require.Equal(t, 0, GetInt("default_timeout", -1))
	require.True(t, GetBool("history_enabled", false))
	require.Equal(t, "64", Get("popup_width", ""))
}

func TestDefaultDirectoriesFollowXDG(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	require.Equal(t, filepath.Join(tmp, "config", "tmux-alert"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "tmux-alert"), Get("state_dir", ""))
	require.Equal(t, filepath.Join(tmp, "config", "tmux-alert", "hooks"), Get("hooks_dir", ""))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmp := setupConfigEnv(t)
	configFile := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
cancel_title = "Abort"
default_timeout = 15
hooks_failure_mode = "abort"
`), 0644))

	t.Setenv("TMUX_ALERT_CONFIG_PATH", configFile)
	t.Setenv("TMUX_ALERT_DEFAULT_TIMEOUT", "30")
	Load()

	require.Equal(t, configFile, Path())
	require.Equal(t, 30, GetInt("default_timeout", 0), "environment should override config file")
	require.Equal(t, "Abort", Get("cancel_title", ""))
	require.Equal(t, "abort", Get("hooks_failure_mode", ""))
}

func TestYAMLConfigFile(t *testing.T) {
	tmp := setupConfigEnv(t)
	configDir := filepath.Join(tmp, "config", "tmux-alert")
	require.NoError(t, os.MkdirAll(configDir, FileModeDir))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(`
ok_title: Proceed
history_enabled: false
logging_max_files: 3
`), FileModeFile))

	Load()

	require.Equal(t, "Proceed", Get("ok_title", ""))
	require.False(t, GetBool("history_enabled", true))
	require.Equal(t, 3, GetInt("logging_max_files", 0))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("TMUX_ALERT_HOOKS_FAILURE_MODE", "explode")
	t.Setenv("TMUX_ALERT_DEFAULT_TIMEOUT", "-2")
	t.Setenv("TMUX_ALERT_HISTORY_ENABLED", "maybe")
	t.Setenv("TMUX_ALERT_LOGGING_LEVEL", "WARN")
	Load()

	require.Equal(t, "warn", Get("hooks_failure_mode", ""))
	require.Equal(t, "0", Get("default_timeout", ""))
	require.Equal(t, "true", Get("history_enabled", ""))
	require.Equal(t, "warn", Get("logging_level", ""))
}

func TestTemplateValidator(t *testing.T) {
	v := TemplateValidator(func(s string) error {
		if s == "bad" {
			return errors.New("nope")
		}
		return nil
	})

	got, err := v("countdown_format", "bad", "(%d)")
	require.NoError(t, err)
	require.Equal(t, "(%d)", got)

	got, err = v("countdown_format", "[%d]", "(%d)")
	require.NoError(t, err)
	require.Equal(t, "[%d]", got)
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	require.Panics(t, func() {
		RegisterValidator("hooks_enabled", BoolValidator())
	})
}

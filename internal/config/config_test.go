package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "f1", cfg.ShutdownKey)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "black", cfg.Background)
	assert.Empty(t, cfg.Source.Host)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	require.NoError(t, Validate(cfg))

	// Every window sits below the banner and inside 80x24.
	for _, w := range cfg.Windows {
		assert.GreaterOrEqual(t, w.Y, 1, w.Name)
		assert.LessOrEqual(t, w.X+w.Width, 80, w.Name)
		assert.LessOrEqual(t, w.Y+w.Height, 24, w.Name)
		assert.True(t, w.Outlined(), w.Name)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, `
version: 1
shutdown_key: q
interval: 500ms
background: blue
log_file: ~/statusboard.log
source:
  host: web-1
  timeout: 3s
windows:
  - name: cpu
    height: 5
    width: 30
    x: 0
    y: 1
    outline: false
    title:
      text: CPU
      vertical: bottom
      horizontal: right
      color: cyan
    fields:
      - name: usage
        x: 1
        y: 1
        type: float64
        format: "cpu %5.1f%%"
        default: 0
        metric: cpu.percent
        thresholds:
          - {low: 0, high: 75, color: green}
          - {low: 90, high: 100, color: red}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "q", cfg.ShutdownKey)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, "blue", cfg.Background)
	assert.Equal(t, ExpandTilde("~/statusboard.log"), cfg.LogFile)
	assert.Equal(t, "web-1", cfg.Source.Host)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)

	require.Len(t, cfg.Windows, 1)
	w := cfg.Windows[0]
	assert.False(t, w.Outlined())
	require.NotNil(t, w.Title)
	assert.Equal(t, TitleConfig{Text: "CPU", Vertical: "bottom", Horizontal: "right", Color: "cyan"}, *w.Title)

	require.Len(t, w.Fields, 1)
	f := w.Fields[0]
	assert.Equal(t, TypeFloat64, f.ValueType())
	assert.Equal(t, "0", f.Default)
	assert.Equal(t, []ThresholdConfig{{0, 75, "green"}, {90, 100, "red"}}, f.Thresholds)
	require.NoError(t, Validate(cfg))
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, "interval: 2s\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, "f1", cfg.ShutdownKey)
	assert.Equal(t, DefaultLayout(), cfg.Windows)
}

func TestLoad_UserWindowsReplaceLayout(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, `
windows:
  - name: only
    height: 3
    width: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Windows, 1)
	assert.Nil(t, cfg.Windows[0].Title, "nothing merged in from the default layout")
	assert.Empty(t, cfg.Windows[0].Fields)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml")},
		{name: "bad yaml", path: writeFile(t, dir, "bad.yaml", "windows: [\n")},
		{name: "unknown key", path: writeFile(t, dir, "unknown.yaml", "refresh: 1s\n")},
		{name: "unknown nested key", path: writeFile(t, dir, "nested.yaml", "source:\n  hostname: x\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestFind(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	path, err := Find("")
	require.NoError(t, err)
	assert.Empty(t, path, "nothing to find yet")

	global := writeFile(t, home, filepath.Join(GlobalConfigDir, GlobalConfigFile), "interval: 1s\n")
	path, err = Find("")
	require.NoError(t, err)
	assert.Equal(t, global, path)

	local := writeFile(t, work, ConfigFileName, "interval: 1s\n")
	path, err = Find("")
	require.NoError(t, err)
	assert.Equal(t, local, path, "the working directory wins over the global file")

	explicit := writeFile(t, t.TempDir(), "custom.yaml", "interval: 1s\n")
	path, err = Find(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)

	_, err = Find(filepath.Join(work, "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)

	writeFile(t, work, ConfigFileName, "background: red\n")
	cfg, path, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, ConfigFileName), path)
	assert.Equal(t, "red", cfg.Background)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Host = "web-1"
	cfg.Interval = 250 * time.Millisecond

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# statusboard configuration")
	assert.Contains(t, string(data), "interval: 250ms")

	path := writeFile(t, t.TempDir(), ConfigFileName, string(data))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, Save(path, DefaultConfig(), false))
	assert.Error(t, Save(path, DefaultConfig(), false))
	assert.NoError(t, Save(path, DefaultConfig(), true))
}

func TestSetSourceHost(t *testing.T) {
	dir := t.TempDir()

	t.Run("adds source section and keeps comments", func(t *testing.T) {
		path := writeFile(t, dir, "a.yaml", "# my board\ninterval: 2s\n")

		require.NoError(t, SetSourceHost(path, "web-1"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# my board")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "web-1", cfg.Source.Host)
		assert.Equal(t, 2*time.Second, cfg.Interval)
	})

	t.Run("replaces existing host", func(t *testing.T) {
		path := writeFile(t, dir, "b.yaml", "source:\n  host: old\n  timeout: 4s\n")

		require.NoError(t, SetSourceHost(path, "new"))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "new", cfg.Source.Host)
		assert.Equal(t, 4*time.Second, cfg.Source.Timeout)
	})

	t.Run("empty host removes the key", func(t *testing.T) {
		path := writeFile(t, dir, "c.yaml", "source:\n  host: old\n")

		require.NoError(t, SetSourceHost(path, ""))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Source.Host)
	})

	t.Run("not a mapping", func(t *testing.T) {
		path := writeFile(t, dir, "d.yaml", "- 1\n- 2\n")
		assert.Error(t, SetSourceHost(path, "x"))
	})
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "logs/sb.log"), ExpandTilde("~/logs/sb.log"))
	assert.Equal(t, "/var/log/sb.log", ExpandTilde("/var/log/sb.log"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
	assert.Equal(t, "", ExpandTilde(""))
}

package emu

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go8080/emu/log"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	const content = `
[cpu]
stack_pointer = 0x2400

[run]
max_steps = 1000000
stop_outside_image = true
progress = "500ms"

[log]
modules = ["cpu", "io"]

[video]
unknown_key = 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := Config{
		CPU: CPUConfig{StackPointer: 0x2400},
		Run: RunConfig{
			MaxSteps:         1000000,
			StopOutsideImage: true,
			Progress:         Duration{500 * time.Millisecond},
		},
		Log: LogConfig{Modules: []string{"cpu", "io"}},
	}
	require.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[run]
progress = "forever"
`), 0644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Config{
		CPU: CPUConfig{StackPointer: 0xF000},
		Run: RunConfig{
			MaxSteps: 42,
			Progress: Duration{2 * time.Second},
		},
		Log: LogConfig{Modules: []string{"emu"}},
	}
	require.NoError(t, SaveConfigTo(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLogConfigMask(t *testing.T) {
	mask, err := LogConfig{Modules: []string{"cpu", "io"}}.Mask()
	require.NoError(t, err)
	require.Equal(t, log.ModCPU.Mask()|log.ModIO.Mask(), mask)

	mask, err = LogConfig{Modules: []string{"emu", "all"}}.Mask()
	require.NoError(t, err)
	require.Equal(t, log.ModuleMaskAll, mask)

	mask, err = LogConfig{}.Mask()
	require.NoError(t, err)
	require.Zero(t, mask)

	_, err = LogConfig{Modules: []string{"ppu"}}.Mask()
	require.Error(t, err)
}

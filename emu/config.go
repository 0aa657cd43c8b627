package emu

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go8080/emu/log"

	"github.com/BurntSushi/toml"
)

type Config struct {
	CPU CPUConfig `toml:"cpu"`
	Run RunConfig `toml:"run"`
	Log LogConfig `toml:"log"`

	TraceOut io.Writer `toml:"-"`
}

type CPUConfig struct {
	// Initial stack pointer. The CPU starts with SP=0, programs usually
	// set their own stack with LXI SP.
	StackPointer uint16 `toml:"stack_pointer"`
}

type RunConfig struct {
	// Maximum number of executed instructions, 0 means no limit.
	MaxSteps int64 `toml:"max_steps"`

	// Stop as soon as PC leaves the loaded image.
	StopOutsideImage bool `toml:"stop_outside_image"`

	// Period of the progress report, 0 disables it.
	Progress Duration `toml:"progress"`
}

type LogConfig struct {
	// Modules with debug logs enabled, "all" for all of them.
	Modules []string `toml:"modules"`
}

// Mask returns the mask of the configured debug modules.
func (lc LogConfig) Mask() (log.ModuleMask, error) {
	var mask log.ModuleMask
	for _, name := range lc.Modules {
		if name == "all" {
			return log.ModuleMaskAll, nil
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown log module %q", name)
		}
		mask |= mod.Mask()
	}
	return mask, nil
}

// Duration is a time.Duration stored as a string ("1s", "250ms") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func DefaultConfig() Config {
	return Config{}
}

// ConfigDir returns the go8080 directory under the user configuration
// directory.
var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.WarnZ("No user config directory, using current directory").Error("err", err).End()
		dir = "."
	}
	return filepath.Join(dir, "go8080")
})

const cfgFilename = "config.toml"

func ConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfig loads the configuration at path. Values missing from the file
// keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("Unknown config key").
			String("key", key.String()).
			String("file", path).
			End()
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the go8080 config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	path := ConfigPath()
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("Failed to load config, using defaults").Error("err", err).End()
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into go8080 config directory.
func SaveConfig(cfg Config) error {
	return SaveConfigTo(ConfigPath(), cfg)
}

// SaveConfigTo writes cfg at path, creating the parent directory if needed.
func SaveConfigTo(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Package config handles loading taskmate.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskmate/internal/kv"
	"github.com/amonks/taskmate/internal/paths"
	"github.com/amonks/taskmate/internal/validation"
	"github.com/amonks/taskmate/task"
)

const (
	// ProjectFile is the per-directory config file name.
	ProjectFile = "taskmate.toml"

	// DataDirEnv overrides the storage directory from any config file.
	DataDirEnv = "TASKMATE_DATA_DIR"
)

// Config represents the taskmate.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	UI      UI      `toml:"ui"`
}

// Storage selects where tasks are persisted.
type Storage struct {
	// Backend is one of "file", "bolt", or "memory". Defaults to "file".
	Backend string `toml:"backend"`

	// Dir is the data directory. Relative paths are resolved against the
	// directory of the config file that set them; "~/" expands to $HOME.
	Dir string `toml:"dir"`
}

// UI contains presentation defaults.
type UI struct {
	// DefaultTab is the tab shown first (Active, Completed, Deleted).
	DefaultTab string `toml:"default-tab"`

	// DefaultCategory is used by `add` when no category flag is given.
	DefaultCategory string `toml:"default-category"`
}

// Load loads configuration from projectDir and the global config file.
// Returns an empty config if no config files exist.
func Load(projectDir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	dir := strings.TrimSpace(cfg.Storage.Dir)
	if dir != "" && !filepath.IsAbs(dir) && !strings.HasPrefix(dir, "~") {
		cfg.Storage.Dir = filepath.Join(filepath.Dir(path), dir)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.UI.DefaultTab = mergeString(projectMeta.IsDefined("ui", "default-tab"), projectCfg.UI.DefaultTab, globalCfg.UI.DefaultTab)
	merged.UI.DefaultCategory = mergeString(projectMeta.IsDefined("ui", "default-category"), projectCfg.UI.DefaultCategory, globalCfg.UI.DefaultCategory)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) validate() error {
	if c.Storage.Backend != "" {
		valid := false
		for _, backend := range kv.Backends() {
			if strings.EqualFold(c.Storage.Backend, backend) {
				valid = true
				break
			}
		}
		if !valid {
			return validation.FormatInvalidValueError(kv.ErrUnknownBackend, c.Storage.Backend, kv.Backends())
		}
	}
	if _, err := c.Tab(); err != nil {
		return fmt.Errorf("ui.default-tab: %w", err)
	}
	if _, err := c.Category(); err != nil {
		return fmt.Errorf("ui.default-category: %w", err)
	}
	return nil
}

// DataDir returns the storage directory: $TASKMATE_DATA_DIR, then
// storage.dir, then the default state directory.
func (c *Config) DataDir() (string, error) {
	override := strings.TrimSpace(os.Getenv(DataDirEnv))
	if override == "" {
		override = c.Storage.Dir
	}
	dir, err := paths.ResolveWithDefault(override, paths.DefaultStateDir)
	if err != nil {
		return "", err
	}
	return paths.ExpandHome(dir)
}

// Tab returns the configured default tab, TabActive when unset.
func (c *Config) Tab() (task.Tab, error) {
	if c.UI.DefaultTab == "" {
		return task.TabActive, nil
	}
	return task.ParseTab(c.UI.DefaultTab)
}

// Category returns the configured default category, CategoryOther when unset.
func (c *Config) Category() (task.Category, error) {
	if c.UI.DefaultCategory == "" {
		return task.CategoryOther, nil
	}
	return task.ParseCategory(c.UI.DefaultCategory)
}

// OpenMedium opens the configured storage backend.
func (c *Config) OpenMedium() (kv.Medium, error) {
	dir, err := c.DataDir()
	if err != nil {
		return nil, err
	}
	return kv.Open(c.Storage.Backend, dir)
}

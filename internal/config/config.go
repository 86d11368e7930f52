package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "records"
	configFile = "config.yaml"

	// ConfigDirEnvVar overrides the configuration directory.
	ConfigDirEnvVar = "RECORDS_CONFIG_DIR"
)

// Config is the on-disk configuration.
type Config struct {
	Version int     `yaml:"version"`
	Storage Storage `yaml:"storage"`
	UI      UI      `yaml:"ui"`
	Log     Log     `yaml:"log"`
}

// Storage selects the slot backend and the key the list lives under.
type Storage struct {
	Backend string `yaml:"backend"` // "file" | "sqlite"
	Dir     string `yaml:"dir,omitempty"`
	Key     string `yaml:"key"`
}

type UI struct {
	Theme string `yaml:"theme"` // "classic" | "neon" | "mono"
	Group bool   `yaml:"group"`
}

type Log struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Storage: Storage{Backend: "file", Key: "records"},
		UI:      UI{Theme: "classic"},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory.
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(ConfigDirEnvVar)); dir != "" {
		return dir, nil
	}

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			return filepath.Join(userProfile, "AppData", "Local", appName), nil
		}
		return filepath.Join(localAppData, appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the configuration at path. An empty path means GetConfigPath().
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}
	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "records"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "classic"
	}
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# records configuration file\n\n")
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// DataDir returns the directory holding the stored list and the log file.
// It defaults to the configuration directory.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	return GetConfigDir()
}

// LogPath returns the log file path, defaulting to <DataDir>/records.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// StorageConfig selects where the checklist snapshot is kept.
type StorageConfig struct {
	Driver string // sqlite, file or memory
	Path   string
	Key    string
}

// LogConfig holds zap settings. Path must not be stdout while the TUI runs.
type LogConfig struct {
	Level  string
	Format string
	Path   string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultRoom string `mapstructure:"default_room"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "inventaris")
}

// Load reads configuration from file and env. Env var overrides use prefix INVENTARIS_.
// path, when set, wins over INVENTARIS_CONFIG and must exist.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "") // filled per driver after unmarshal
	v.SetDefault("storage.key", "roomsData")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(dataDir(), "inventaris.log"))
	v.SetDefault("ui.default_room", "")

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("INVENTARIS_CONFIG")
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "inventaris"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("INVENTARIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Driver)
	}
	return c, nil
}

// defaultStoragePath names the data file after the driver's format. The
// memory driver keeps nothing on disk.
func defaultStoragePath(driver string) string {
	switch driver {
	case "memory":
		return ""
	case "file":
		return filepath.Join(dataDir(), "rooms.json")
	default:
		return filepath.Join(dataDir(), "inventaris.db")
	}
}

/*
Package config manages TOML config for wordmatch services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Counter CounterConfig `toml:"counter"`
	Geo     GeoConfig     `toml:"geo"`
	LRU     LRUConfig     `toml:"lru"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTextLen   int    `toml:"max_text_len"`
	MaxWords     int    `toml:"max_words"`
	MaxWordBytes int    `toml:"max_word_bytes"` // total bytes over all words of one counter
	DefaultMode  string `toml:"default_mode"`
}

// CounterConfig holds the alphabet tweaks applied to every counter and
// the directory word lists are loaded from.
type CounterConfig struct {
	ExtraDelimiters string `toml:"extra_delimiters"`
	ExtraWordChars  string `toml:"extra_word_chars"`
	WordsDir        string `toml:"words_dir"`
}

// GeoConfig holds geohash defaults.
type GeoConfig struct {
	Precision    int `toml:"precision"`
	GridSteps    int `toml:"grid_steps"`
	MaxGridSteps int `toml:"max_grid_steps"`
}

// LRUConfig sizes the shared string cache.
type LRUConfig struct {
	MaxItems int `toml:"max_items"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultMode string `toml:"default_mode"`
	FindAll     bool   `toml:"find_all"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordmatch
// 2. ~/Library/Application Support/wordmatch (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordmatch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxTextLen:   1 << 20,
			MaxWords:     10000,
			MaxWordBytes: 1 << 16,
			DefaultMode:  "SUM",
		},
		Counter: CounterConfig{
			WordsDir: "words",
		},
		Geo: GeoConfig{
			Precision:    12,
			GridSteps:    1,
			MaxGridSteps: 10,
		},
		LRU: LRUConfig{
			MaxItems: 10000,
		},
		CLI: CliConfig{
			DefaultMode: "SUM",
			FindAll:     true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every value that parses with the right type and
// falls back to defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	sections, err := utils.ReadTOMLSections(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	extractServerConfig(sections["server"], &config.Server)
	extractCounterConfig(sections["counter"], &config.Counter)
	extractGeoConfig(sections["geo"], &config.Geo)
	sections["lru"].Int("max_items", &config.LRU.MaxItems)
	extractCliConfig(sections["cli"], &config.CLI)
	config.normalize()
	return config, nil
}

func extractServerConfig(s utils.Section, server *ServerConfig) {
	s.Int("max_text_len", &server.MaxTextLen)
	s.Int("max_words", &server.MaxWords)
	s.Int("max_word_bytes", &server.MaxWordBytes)
	s.Text("default_mode", &server.DefaultMode)
}

func extractCounterConfig(s utils.Section, counter *CounterConfig) {
	s.Text("extra_delimiters", &counter.ExtraDelimiters)
	s.Text("extra_word_chars", &counter.ExtraWordChars)
	s.Text("words_dir", &counter.WordsDir)
}

func extractGeoConfig(s utils.Section, geo *GeoConfig) {
	s.Int("precision", &geo.Precision)
	s.Int("grid_steps", &geo.GridSteps)
	s.Int("max_grid_steps", &geo.MaxGridSteps)
}

func extractCliConfig(s utils.Section, cli *CliConfig) {
	s.Text("default_mode", &cli.DefaultMode)
	s.Bool("find_all", &cli.FindAll)
}

// normalize replaces out of range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Server.MaxTextLen <= 0 {
		log.Warnf("Invalid max_text_len %d, using %d", c.Server.MaxTextLen, def.Server.MaxTextLen)
		c.Server.MaxTextLen = def.Server.MaxTextLen
	}
	if c.Server.MaxWords <= 0 {
		log.Warnf("Invalid max_words %d, using %d", c.Server.MaxWords, def.Server.MaxWords)
		c.Server.MaxWords = def.Server.MaxWords
	}
	if c.Server.MaxWordBytes <= 0 {
		log.Warnf("Invalid max_word_bytes %d, using %d", c.Server.MaxWordBytes, def.Server.MaxWordBytes)
		c.Server.MaxWordBytes = def.Server.MaxWordBytes
	}
	if c.Geo.Precision <= 0 || c.Geo.Precision > 22 {
		log.Warnf("Invalid geohash precision %d, using %d", c.Geo.Precision, def.Geo.Precision)
		c.Geo.Precision = def.Geo.Precision
	}
	if c.Geo.MaxGridSteps < 0 {
		c.Geo.MaxGridSteps = def.Geo.MaxGridSteps
	}
	if c.Geo.GridSteps < 0 || c.Geo.GridSteps > c.Geo.MaxGridSteps {
		log.Warnf("Invalid grid_steps %d, using %d", c.Geo.GridSteps, min(def.Geo.GridSteps, c.Geo.MaxGridSteps))
		c.Geo.GridSteps = min(def.Geo.GridSteps, c.Geo.MaxGridSteps)
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server values that are set and saves to file
func (c *Config) Update(configPath string, maxTextLen, maxWords *int, defaultMode *string) error {
	if maxTextLen != nil {
		c.Server.MaxTextLen = *maxTextLen
	}
	if maxWords != nil {
		c.Server.MaxWords = *maxWords
	}
	if defaultMode != nil {
		c.Server.DefaultMode = *defaultMode
	}
	c.normalize()
	return SaveConfig(c, configPath)
}

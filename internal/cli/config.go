package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/entityschema/internal/paths"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend            = "backend"
	cfgKeyDataDir            = "data_dir"
	cfgKeyMaxNameBadgeChars  = "max_name_badge_chars"
	cfgKeyMaxSchemaTextBytes = "max_schema_text_bytes"
	cfgKeyLogLevel           = "log_level"
	cfgKeyExtraLanguages     = "extra_languages"

	envLogLevel = "ENTITYSCHEMA_LOG_LEVEL"
)

// loadConfig reads config.yaml from the resolved config directory with
// Viper. A missing file is not an error; defaults apply. The data directory
// and log level flags override the file.
func (a *app) loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	defaults := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeyMaxNameBadgeChars, defaults.MaxNameBadgeChars)
	v.SetDefault(cfgKeyMaxSchemaTextBytes, defaults.MaxSchemaTextBytes)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetDefault(cfgKeyExtraLanguages, []string{})
	v.SetDefault(cfgKeyDataDir, "")
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return types.Config{}, err
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, userError(fmt.Errorf("read config: %w", err))
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, userError(fmt.Errorf("decode config: %w", err))
	}

	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// configFile is the document written by init. data_dir is only written
// when chosen explicitly.
type configFile struct {
	Backend            string   `yaml:"backend"`
	DataDir            string   `yaml:"data_dir,omitempty"`
	MaxNameBadgeChars  int      `yaml:"max_name_badge_chars"`
	MaxSchemaTextBytes int      `yaml:"max_schema_text_bytes"`
	LogLevel           string   `yaml:"log_level"`
	ExtraLanguages     []string `yaml:"extra_languages,omitempty"`
}

const configHeader = "# entityschema configuration\n"

// writeConfigIfMissing creates config.yaml in configDir unless it exists.
// It reports whether a file was written.
func writeConfigIfMissing(configDir string, cfg configFile) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

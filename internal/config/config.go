package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/signcfg/internal/buildconfig"
	"github.com/eugenenazirov/signcfg/internal/properties"
)

const (
	defaultProjectRoot = "."
	defaultAppDir      = "app"
	defaultFormat      = FormatJSON
	defaultLogLevel    = "info"
)

// Output formats for the emitted plan.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Defaults
type Config struct {
	ProjectRoot   string
	AppDir        string
	Format        string
	LogLevel      string
	DebugKeystore string
	Android       buildconfig.Android
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	ProjectRoot   string              `yaml:"project_root"`
	AppDir        string              `yaml:"app_dir"`
	Format        string              `yaml:"format"`
	LogLevel      string              `yaml:"log_level"`
	DebugKeystore string              `yaml:"debug_keystore"`
	Android       buildconfig.Android `yaml:"android"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	ProjectRoot *string
	AppDir      *string
	Format      *string
	LogLevel    *string
}

// Load extracts configuration with precedence: CLI flags > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	normalize(&cfg)

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// PropertiesPath returns the fixed location of key.properties.
func (c Config) PropertiesPath() string {
	return properties.Path(c.ProjectRoot)
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		ProjectRoot: defaultProjectRoot,
		AppDir:      defaultAppDir,
		Format:      defaultFormat,
		LogLevel:    defaultLogLevel,
		Android:     buildconfig.Default(),
	}
}

// yamlBuildTypes captures raw build type nodes so each one can be decoded
// on top of its default instead of replacing it.
type yamlBuildTypes struct {
	Android struct {
		BuildTypes map[string]yaml.Node `yaml:"build_types"`
	} `yaml:"android"`
}

// loadFromFile loads configuration from a YAML file. The android block,
// including each build type, is decoded on top of the defaults so a file only
// lists what it changes.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	yamlCfg := yamlConfig{Android: buildconfig.Default()}
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	var raw yamlBuildTypes
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	buildTypes, err := mergeBuildTypes(buildconfig.Default().BuildTypes, raw.Android.BuildTypes)
	if err != nil {
		return nil, err
	}
	yamlCfg.Android.BuildTypes = buildTypes

	return &yamlCfg, nil
}

// mergeBuildTypes decodes every node onto the matching default build type.
// Unknown names start from a zero BuildType.
func mergeBuildTypes(defaults map[string]buildconfig.BuildType, nodes map[string]yaml.Node) (map[string]buildconfig.BuildType, error) {
	merged := make(map[string]buildconfig.BuildType, len(defaults)+len(nodes))
	for name, bt := range defaults {
		merged[name] = bt
	}

	for name, node := range nodes {
		bt := merged[name]
		if err := node.Decode(&bt); err != nil {
			return nil, fmt.Errorf("parse YAML build type %s: %w", name, err)
		}
		merged[name] = bt
	}

	return merged, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.ProjectRoot != "" {
		cfg.ProjectRoot = yamlCfg.ProjectRoot
	}

	if yamlCfg.AppDir != "" {
		cfg.AppDir = yamlCfg.AppDir
	}

	if yamlCfg.Format != "" {
		cfg.Format = yamlCfg.Format
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.DebugKeystore != "" {
		cfg.DebugKeystore = yamlCfg.DebugKeystore
	}

	cfg.Android = yamlCfg.Android
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.ProjectRoot != nil && *overrides.ProjectRoot != "" {
		cfg.ProjectRoot = *overrides.ProjectRoot
	}

	if overrides.AppDir != nil && *overrides.AppDir != "" {
		cfg.AppDir = *overrides.AppDir
	}

	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = *overrides.Format
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// normalize resolves the app directory against the project root and fills
// build type names from their map keys.
func normalize(cfg *Config) {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if !filepath.IsAbs(cfg.AppDir) {
		cfg.AppDir = filepath.Join(cfg.ProjectRoot, cfg.AppDir)
	}

	for name, bt := range cfg.Android.BuildTypes {
		if bt.Name == "" {
			bt.Name = name
			cfg.Android.BuildTypes[name] = bt
		}
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Format != FormatJSON && cfg.Format != FormatYAML {
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatYAML, cfg.Format)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if err := cfg.Android.Validate(); err != nil {
		return fmt.Errorf("invalid android settings: %w", err)
	}
	return nil
}

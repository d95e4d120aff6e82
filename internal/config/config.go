package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the comet configuration.
type Config struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	// Style is the message style: "conventional" or "casual".
	Style string `json:"style"`
	// MaxCost is the spending ceiling in dollars per generation. 0 disables
	// the ceiling.
	MaxCost float64 `json:"maxCost"`
	// NoLLM forces the offline heuristic generator.
	NoLLM bool `json:"noLLM"`
	// ContextLines is the -U value passed to git diff.
	ContextLines int `json:"contextLines"`
	// GroupThreshold is the raw diff size in characters above which commit
	// grouping kicks in.
	GroupThreshold int `json:"groupThreshold"`
	// GroupSoftCap is the per-group size limit in characters.
	GroupSoftCap int `json:"groupSoftCap"`
	// LargeDiffTokens is the token estimate above which the LLM path is
	// skipped in favor of the heuristic, and writes need --force-write.
	LargeDiffTokens int `json:"largeDiffTokens"`
	// RiskThreshold is the score at or above which `comet risk` exits 2.
	RiskThreshold float64 `json:"riskThreshold"`
	// ProductionPaths are substring patterns marking production config files.
	ProductionPaths []string    `json:"productionPaths,omitempty"`
	Cache           CacheConfig `json:"cache"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
	MaxEntries int    `json:"maxEntries"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:        "anthropic",
		Model:           "claude-sonnet-4-20250514",
		Style:           "conventional",
		MaxCost:         0.02,
		ContextLines:    3,
		GroupThreshold:  10000,
		GroupSoftCap:    32000,
		LargeDiffTokens: 8000,
		RiskThreshold:   0.7,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400 * 7,
			MaxEntries: 500,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for comet.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "comet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "comet"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "comet"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "comet"), nil
	default:
		return filepath.Join(home, ".config", "comet"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only set values appear).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	for k, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(&cfg, k, v); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Style != "" {
		dst.Style = src.Style
	}
	if src.MaxCost > 0 {
		dst.MaxCost = src.MaxCost
	}
	if src.ContextLines > 0 {
		dst.ContextLines = src.ContextLines
	}
	if src.GroupThreshold > 0 {
		dst.GroupThreshold = src.GroupThreshold
	}
	if src.GroupSoftCap > 0 {
		dst.GroupSoftCap = src.GroupSoftCap
	}
	if src.LargeDiffTokens > 0 {
		dst.LargeDiffTokens = src.LargeDiffTokens
	}
	if src.RiskThreshold > 0 {
		dst.RiskThreshold = src.RiskThreshold
	}
	if len(src.ProductionPaths) > 0 {
		dst.ProductionPaths = src.ProductionPaths
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Cache.MaxEntries > 0 {
		dst.Cache.MaxEntries = src.Cache.MaxEntries
	}
	dst.NoLLM = dst.NoLLM || src.NoLLM
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("COMET_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("COMET_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COMET_STYLE"); v != "" {
		cfg.Style = v
	}
	if v := os.Getenv("COMET_MAX_COST"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxCost = f
		}
	}
	if v := os.Getenv("COMET_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("COMET_GROUP_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GroupThreshold = n
		}
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "style":
		if value != "conventional" && value != "casual" {
			return fmt.Errorf("style must be conventional or casual, got %q", value)
		}
		cfg.Style = value
	case "maxCost":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("maxCost must be a number: %w", err)
		}
		cfg.MaxCost = f
	case "contextLines":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contextLines must be an integer: %w", err)
		}
		cfg.ContextLines = n
	case "groupThreshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("groupThreshold must be an integer: %w", err)
		}
		cfg.GroupThreshold = n
	case "groupSoftCap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("groupSoftCap must be an integer: %w", err)
		}
		cfg.GroupSoftCap = n
	case "largeDiffTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("largeDiffTokens must be an integer: %w", err)
		}
		cfg.LargeDiffTokens = n
	case "riskThreshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("riskThreshold must be a number: %w", err)
		}
		cfg.RiskThreshold = f
	case "cacheDir":
		cfg.Cache.Dir = value
	case "noLLM":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("noLLM must be a boolean: %w", err)
		}
		cfg.NoLLM = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

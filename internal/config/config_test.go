package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config path at a temp dir and clears env overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, v := range []string{
		"COMET_PROVIDER", "COMET_MODEL", "COMET_STYLE",
		"COMET_MAX_COST", "COMET_CACHE_DIR", "COMET_GROUP_THRESHOLD",
	} {
		t.Setenv(v, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Style != "conventional" {
		t.Errorf("Style = %q", cfg.Style)
	}
	if cfg.MaxCost != 0.02 {
		t.Errorf("MaxCost = %v", cfg.MaxCost)
	}
	if cfg.RiskThreshold != 0.7 {
		t.Errorf("RiskThreshold = %v", cfg.RiskThreshold)
	}
	if cfg.GroupThreshold != 10000 {
		t.Errorf("GroupThreshold = %v", cfg.GroupThreshold)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache disabled by default")
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want default", cfg.Provider)
	}
	if cfg.MaxCost != 0.02 {
		t.Errorf("MaxCost = %v, want default", cfg.MaxCost)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	if err := Save(Config{Provider: "openai", Model: "gpt-4o-mini", MaxCost: 0.05}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" {
		t.Errorf("Provider = %q, Model = %q", cfg.Provider, cfg.Model)
	}
	if cfg.MaxCost != 0.05 {
		t.Errorf("MaxCost = %v, want 0.05", cfg.MaxCost)
	}
	// Unset fields keep defaults
	if cfg.Style != "conventional" {
		t.Errorf("Style = %q, want default", cfg.Style)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	if err := Save(Config{Provider: "openai"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	t.Setenv("COMET_PROVIDER", "ollama")
	t.Setenv("COMET_MAX_COST", "0.10")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want env value", cfg.Provider)
	}
	if cfg.MaxCost != 0.10 {
		t.Errorf("MaxCost = %v, want env value", cfg.MaxCost)
	}
}

func TestLoad_FlagOverridesEverything(t *testing.T) {
	isolate(t)
	t.Setenv("COMET_PROVIDER", "ollama")

	cfg, err := Load(map[string]string{"provider": "openai", "style": "casual"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want flag value", cfg.Provider)
	}
	if cfg.Style != "casual" {
		t.Errorf("Style = %q, want flag value", cfg.Style)
	}
}

func TestLoad_BadOverrideErrors(t *testing.T) {
	isolate(t)
	if _, err := Load(map[string]string{"maxCost": "lots"}); err == nil {
		t.Error("Expected error for unparsable maxCost")
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(Config) bool
	}{
		{"provider", "openai", false, func(c Config) bool { return c.Provider == "openai" }},
		{"style", "casual", false, func(c Config) bool { return c.Style == "casual" }},
		{"style", "haiku", true, nil},
		{"maxCost", "0.5", false, func(c Config) bool { return c.MaxCost == 0.5 }},
		{"maxCost", "abc", true, nil},
		{"groupThreshold", "2000", false, func(c Config) bool { return c.GroupThreshold == 2000 }},
		{"riskThreshold", "0.9", false, func(c Config) bool { return c.RiskThreshold == 0.9 }},
		{"noLLM", "true", false, func(c Config) bool { return c.NoLLM }},
		{"cacheDir", "/tmp/c", false, func(c Config) bool { return c.Cache.Dir == "/tmp/c" }},
		{"nonsense", "x", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := SetField(&cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetField error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("field not applied: %+v", cfg)
			}
		})
	}
}

func TestSaveLoadFile_RoundTrip(t *testing.T) {
	isolate(t)
	in := Default()
	in.Provider = "ollama"
	in.Model = "llama3"
	in.Cache.MaxEntries = 42

	if err := Save(in); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	out, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if out.Provider != "ollama" || out.Model != "llama3" || out.Cache.MaxEntries != 42 {
		t.Errorf("round trip lost data: %+v", out)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("ConfigPath = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file missing: %v", err)
	}
}

func TestLoadFile_MissingIsZero(t *testing.T) {
	isolate(t)
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Provider != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

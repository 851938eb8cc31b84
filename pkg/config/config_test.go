package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("InitConfig = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil || *again != *DefaultConfig() {
		t.Errorf("reloading the written defaults = %+v, %v", again, err)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		content     string
		check       func(*Config) bool
		description string
	}{
		{
			"[server]\nmax_words = 50\ndefault_mode = \"MAX\"\n[counter]\nextra_delimiters = \"-\"\n",
			func(c *Config) bool {
				return c.Server.MaxWords == 50 && c.Server.DefaultMode == "MAX" &&
					c.Counter.ExtraDelimiters == "-" && c.Geo.Precision == 12
			},
			"values override defaults",
		},
		{
			"[server]\nmax_words = \"many\"\n[lru]\nmax_items = 5\n[cli]\nfind_all = false\n",
			func(c *Config) bool {
				return c.Server.MaxWords == 10000 && c.LRU.MaxItems == 5 && !c.CLI.FindAll
			},
			"wrongly typed value recovered section by section",
		},
		{
			"[server]\nmax_word_bytes = 100\n",
			func(c *Config) bool { return c.Server.MaxWordBytes == 100 && c.Server.MaxWords == 10000 },
			"word byte limit read from file",
		},
		{
			"[server]\nmax_word_bytes = 0\n",
			func(c *Config) bool { return c.Server.MaxWordBytes == 1<<16 },
			"non-positive word byte limit normalized",
		},
		{
			"[server]\nmax_word_bytes = \"lots\"\nmax_text_len = 10\n",
			func(c *Config) bool { return c.Server.MaxWordBytes == 1<<16 && c.Server.MaxTextLen == 10 },
			"wrongly typed word byte limit recovered",
		},
		{
			"this is not toml [[[",
			func(c *Config) bool { return *c == *DefaultConfig() },
			"unparseable file falls back to defaults",
		},
		{
			"[geo]\nprecision = 40\ngrid_steps = 99\nmax_grid_steps = 5\n",
			func(c *Config) bool {
				return c.Geo.Precision == 12 && c.Geo.GridSteps == 1 && c.Geo.MaxGridSteps == 5
			},
			"out of range values normalized",
		},
	}
	for _, tc := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Errorf("%s: LoadConfig: %v", tc.description, err)
			continue
		}
		if !tc.check(cfg) {
			t.Errorf("%s: got %+v", tc.description, cfg)
		}
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	os.WriteFile(path, []byte("[lru]\nmax_items = 7\n"), 0644)
	cfg, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path || cfg.LRU.MaxItems != 7 {
		t.Errorf("LoadConfigWithPriority = %+v from %q", cfg.LRU, used)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	words, mode := 25, "AVG"
	if err := cfg.Update(path, nil, &words, &mode); err != nil {
		t.Fatalf("Update: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.MaxWords != 25 || loaded.Server.DefaultMode != "AVG" || loaded.Server.MaxTextLen != 1<<20 {
		t.Errorf("Update saved %+v", loaded.Server)
	}
}

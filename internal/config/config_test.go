package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing port",
			mutate:      func(c *Config) { c.Server.Port = "" },
			expectError: true,
		},
		{
			name:        "default format not in supported list",
			mutate:      func(c *Config) { c.App.DefaultFormat = "xml" },
			expectError: true,
		},
		{
			name:        "missing taxonomy file",
			mutate:      func(c *Config) { c.Engine.TaxonomyFile = "/nonexistent/taxonomy.yaml" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateTaxonomyFilePresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte("technical:\n  programming: [\"go\"]\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := validConfig()
	cfg.Engine.TaxonomyFile = path
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name:        "disabled mode",
			tls:         TLSConfig{Mode: "disabled"},
			expectError: false,
		},
		{
			name:        "server mode with cert and key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"},
			expectError: false,
		},
		{
			name:        "server mode missing key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem"},
			expectError: true,
		},
		{
			name:        "unknown mode",
			tls:         TLSConfig{Mode: "mutual"},
			expectError: true,
		},
		{
			name:        "invalid min version",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.0"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.TLS = tt.tls

			err := cfg.ValidateTLSConfig()
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("api keys from environment", func(t *testing.T) {
		t.Setenv("ATSCORE_SERVER_APIKEYS", "key-a, key-b ,key-c")

		cfg := validConfig()
		cfg.applyFallbacks()

		want := []string{"key-a", "key-b", "key-c"}
		if len(cfg.Server.APIKeys) != len(want) {
			t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
		}
		for i, k := range want {
			if cfg.Server.APIKeys[i] != k {
				t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], k)
			}
		}
	})

	t.Run("service instance derived from hostname", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.ServiceName = "atscore"
		cfg.applyFallbacks()

		if cfg.Observability.ServiceInstance == "" {
			t.Error("service instance should be populated")
		}
	})

	t.Run("debug log level enables console output", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.LogLevel = "debug"
		cfg.applyFallbacks()

		if !cfg.Observability.ConsoleOutput {
			t.Error("console output should be enabled for debug log level")
		}
	})

	t.Run("tls min version default", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.TLS = TLSConfig{Mode: "server", CertFile: "c", KeyFile: "k"}
		cfg.applyFallbacks()

		if cfg.Server.TLS.MinVersion != "1.2" {
			t.Errorf("MinVersion = %q, want 1.2", cfg.Server.TLS.MinVersion)
		}
	})
}

func TestHotReloadDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if !cfg.Engine.HotReload.Enabled {
		t.Error("hot reload should default to enabled")
	}
	if cfg.Engine.HotReload.DebounceDelay != time.Second {
		t.Errorf("debounce delay = %v, want 1s", cfg.Engine.HotReload.DebounceDelay)
	}
	if !cfg.Engine.LinguisticExtraction {
		t.Error("linguistic extraction should default to enabled")
	}
}

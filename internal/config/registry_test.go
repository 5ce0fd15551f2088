package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/jeopardy/internal/pacing"
	"github.com/muurk/jeopardy/internal/trivia"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "jeopardy") {
		t.Errorf("GetConfigDir() = %v, should contain 'jeopardy'", configDir)
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join(xdg, "jeopardy") {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, filepath.Join(xdg, "jeopardy"))
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	reg := Default()

	if reg.Version != CurrentVersion {
		t.Errorf("Default().Version = %v, want %v", reg.Version, CurrentVersion)
	}
	if reg.API.BaseURL != trivia.DefaultBaseURL {
		t.Errorf("Default().API.BaseURL = %v", reg.API.BaseURL)
	}
	if reg.API.PoolSize != 6 {
		t.Errorf("Default().API.PoolSize = %v, want 6", reg.API.PoolSize)
	}
	if reg.API.MaxRetries != 0 {
		t.Errorf("Default().API.MaxRetries = %v, want 0", reg.API.MaxRetries)
	}
	if reg.Pacing.Mode != pacing.ModeFixed || reg.Pacing.Delay != time.Second {
		t.Errorf("Default().Pacing = %+v, want fixed 1s", reg.Pacing)
	}
	if err := reg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reg.API.BaseURL != trivia.DefaultBaseURL {
		t.Errorf("missing file should load defaults, got %+v", reg.API)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := Default()
	reg.API.BaseURL = "http://localhost:9000/api/"
	reg.Pacing.Mode = pacing.ModeAdaptive
	reg.Pacing.Delay = 250 * time.Millisecond
	reg.Server.Announce = true
	reg.Preferences.AutoStart = true

	if err := reg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# Jeopardy Configuration File") {
		t.Error("saved file should start with the header comment")
	}
	if !strings.Contains(string(data), "delay: 250ms") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.BaseURL != reg.API.BaseURL {
		t.Errorf("BaseURL = %v, want %v", loaded.API.BaseURL, reg.API.BaseURL)
	}
	if loaded.Pacing != reg.Pacing {
		t.Errorf("Pacing = %+v, want %+v", loaded.Pacing, reg.Pacing)
	}
	if !loaded.Server.Announce || !loaded.Preferences.AutoStart {
		t.Errorf("flags lost: %+v %+v", loaded.Server, loaded.Preferences)
	}
	if !Exists(path) {
		t.Error("Exists() = false after Save")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\npacing:\n  delay: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reg.Pacing.Delay != 2*time.Second {
		t.Errorf("Pacing.Delay = %v, want 2s", reg.Pacing.Delay)
	}
	if reg.API.BaseURL != trivia.DefaultBaseURL {
		t.Errorf("API.BaseURL = %v, want default", reg.API.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unsupported version", content: "version: 2\n"},
		{name: "malformed yaml", content: "version: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registry)
	}{
		{name: "relative base url", mutate: func(r *Registry) { r.API.BaseURL = "jservice.io/api" }},
		{name: "small pool", mutate: func(r *Registry) { r.API.PoolSize = 5 }},
		{name: "negative retries", mutate: func(r *Registry) { r.API.MaxRetries = -1 }},
		{name: "unknown pacing", mutate: func(r *Registry) { r.Pacing.Mode = "random" }},
		{name: "negative delay", mutate: func(r *Registry) { r.Pacing.Delay = -time.Second }},
		{name: "wrong version", mutate: func(r *Registry) { r.Version = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := Default()
			tt.mutate(reg)
			if err := reg.Validate(); err == nil {
				t.Error("Validate() error = nil, want error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("JEOPARDY_API_URL", "http://trivia.test/api/")
	t.Setenv("JEOPARDY_PACING", "adaptive")
	t.Setenv("JEOPARDY_PACING_DELAY", "500ms")
	t.Setenv("JEOPARDY_ANNOUNCE", "true")

	reg := Default()
	if err := ApplyEnv(reg, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if reg.API.BaseURL != "http://trivia.test/api/" {
		t.Errorf("API.BaseURL = %v", reg.API.BaseURL)
	}
	if reg.Pacing.Mode != "adaptive" || reg.Pacing.Delay != 500*time.Millisecond {
		t.Errorf("Pacing = %+v", reg.Pacing)
	}
	if !reg.Server.Announce {
		t.Error("Server.Announce should be set from the environment")
	}
	// untouched settings keep their values
	if reg.API.PoolSize != trivia.DefaultPoolSize {
		t.Errorf("API.PoolSize = %v", reg.API.PoolSize)
	}
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "JEOPARDY_POOL_SIZE=40\nJEOPARDY_INSTANCE=Quiz Night\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	// godotenv writes into the process environment; clean up after the test
	t.Setenv("JEOPARDY_POOL_SIZE", "")
	os.Unsetenv("JEOPARDY_POOL_SIZE")
	t.Setenv("JEOPARDY_INSTANCE", "")
	os.Unsetenv("JEOPARDY_INSTANCE")

	reg := Default()
	if err := ApplyEnv(reg, dotenv); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if reg.API.PoolSize != 40 {
		t.Errorf("API.PoolSize = %v, want 40", reg.API.PoolSize)
	}
	if reg.Server.Instance != "Quiz Night" {
		t.Errorf("Server.Instance = %q", reg.Server.Instance)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("JEOPARDY_PACING", "sometimes")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := Resolve(path); err == nil {
		t.Error("Resolve() should reject an invalid pacing mode from the environment")
	}
}

func TestEnvDescription(t *testing.T) {
	desc, err := EnvDescription()
	if err != nil {
		t.Fatalf("EnvDescription() error = %v", err)
	}
	for _, name := range []string{"JEOPARDY_API_URL", "JEOPARDY_PACING", "JEOPARDY_PACING_DELAY"} {
		if !strings.Contains(desc, name) {
			t.Errorf("description missing %s", name)
		}
	}
}

func TestClientOptionsAndPacer(t *testing.T) {
	reg := Default()
	reg.API.MaxRetries = 2

	opts := reg.ClientOptions()
	if opts.BaseURL != reg.API.BaseURL || opts.MaxRetries != 2 {
		t.Errorf("ClientOptions() = %+v", opts)
	}

	p, err := reg.NewPacer()
	if err != nil {
		t.Fatalf("NewPacer() error = %v", err)
	}
	if _, ok := p.(*pacing.Fixed); !ok {
		t.Errorf("NewPacer() = %T, want *pacing.Fixed", p)
	}
}

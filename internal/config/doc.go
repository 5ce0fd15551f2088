// Package config provides user configuration management for the jeopardy
// command.
//
// Settings come from three layers, later layers winning:
//  1. Default() values
//  2. a YAML file (gopkg.in/yaml.v3)
//  3. JEOPARDY_* environment variables, optionally from a .env file
//
// Command-line flags override all three in cmd/jeopardy.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/jeopardy/config.yaml or $HOME/.config/jeopardy/config.yaml
//   - macOS: $HOME/.config/jeopardy/config.yaml
//   - Windows: %LOCALAPPDATA%\jeopardy\config.yaml
//
// # Example File
//
//	version: 1
//	api:
//	    base_url: https://jservice.io/api/
//	    timeout: 10s
//	    pool_size: 6
//	    max_retries: 0
//	    cache_duration: 10m0s
//	pacing:
//	    mode: fixed
//	    delay: 1s
//	server:
//	    addr: :8080
//	    announce: false
//	preferences:
//	    auto_start: false
//	    scan_timeout: 5s
//
// # Usage Example
//
//	cfg, err := config.Resolve("") // default location, env applied, validated
//	if err != nil {
//	    return err
//	}
//	client := trivia.NewClientWithOptions(cfg.ClientOptions())
//
// Writes are atomic: the file is written beside the target and renamed.
package config

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/config"
	"github.com/muurk/jeopardy/internal/discovery"
	"github.com/muurk/jeopardy/internal/game"
	"github.com/muurk/jeopardy/internal/logging"
	"github.com/muurk/jeopardy/internal/server"
	"github.com/muurk/jeopardy/internal/trivia"
	"github.com/muurk/jeopardy/internal/tui"
	"github.com/muurk/jeopardy/internal/ui"
	"github.com/muurk/jeopardy/internal/version"
)

// Settings flags shared by every command; they win over the config file and
// the environment
var (
	configPath  string
	apiURL      string
	pacingMode  string
	pacingDelay time.Duration
	maxRetries  int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the per-user config location)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the trivia API")
	rootCmd.PersistentFlags().StringVar(&pacingMode, "pacing", "", "Request pacing: fixed or adaptive")
	rootCmd.PersistentFlags().DurationVar(&pacingDelay, "pacing-delay", 0, "Pause before each category request (e.g. 1s)")
	rootCmd.PersistentFlags().IntVar(&maxRetries, "retries", 0, "Automatic retries of a failed request")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves file, environment and flags, in that order
func loadSettings(cmd *cobra.Command) (*config.Registry, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if flags.Changed("pacing") {
		cfg.Pacing.Mode = pacingMode
	}
	if flags.Changed("pacing-delay") {
		cfg.Pacing.Delay = pacingDelay
	}
	if flags.Changed("retries") {
		cfg.API.MaxRetries = maxRetries
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController wires the trivia client and pacer to a surface
func newController(cfg *config.Registry, view game.View) (*game.Controller, error) {
	pacer, err := cfg.NewPacer()
	if err != nil {
		return nil, err
	}
	client := trivia.NewClientWithOptions(cfg.ClientOptions())
	return game.NewController(client, pacer, view), nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// troubleshoot turns an error into tips for a failure box
func troubleshoot(err error) []string {
	return ui.TipsFromHint(trivia.Troubleshooting(err))
}

// playCmd runs the terminal board
var (
	logFile   string
	logLevel  string
	autoStart bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on the terminal board (default)",
	Long: `Play on a full-screen terminal board.

Press s to deal a board, move with the arrow keys (or hjkl) and press enter
to reveal the selected clue: first the question, then the answer.

The terminal belongs to the board, so logs are only written when --log-file
is given.`,
	Example: `  # Start the board
  jeopardy

  # Deal immediately and log to a file
  jeopardy play --auto-start --log-file jeopardy.log

  # Be gentler with the API
  jeopardy play --pacing adaptive --pacing-delay 2s`,
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
		cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level when logging to a file (debug, info, warn, error)")
		cmd.Flags().BoolVar(&autoStart, "auto-start", false, "Deal a board as soon as the program starts")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	if logFile != "" {
		if err := logging.InitializeWithOutput(logLevel, logFile); err != nil {
			return err
		}
		defer logging.Sync()
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	view := tui.NewView()
	ctrl, err := newController(cfg, view)
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx, ctrl, view, tui.Options{
		AutoStart: autoStart || cfg.Preferences.AutoStart,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("board error: %w", err)
	}
	return nil
}

// serveCmd runs the browser board
var (
	serveAddr     string
	serveAnnounce bool
	serveInstance string
	serveCert     string
	serveKey      string
	serveLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board to browsers",
	Long: `Serve the board as a web page.

Every browser that opens the page sees the same board; a click in any of
them reveals the clue for all. With --announce the board is advertised on
the local network so 'jeopardy scan' can find it.`,
	Example: `  # Serve on port 8080
  jeopardy serve

  # Serve on another port and announce on the LAN
  jeopardy serve --addr :9000 --announce --instance "Quiz Night"

  # Serve over HTTPS
  jeopardy serve --cert cert.pem --key key.pem`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveAnnounce, "announce", false, "Announce the board on the local network via mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "Name to announce the board under")
	serveCmd.Flags().StringVar(&serveCert, "cert", "", "Path to TLS certificate file")
	serveCmd.Flags().StringVar(&serveKey, "key", "", "Path to TLS private key file")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(serveLogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if flags.Changed("announce") {
		cfg.Server.Announce = serveAnnounce
	}
	if flags.Changed("instance") {
		cfg.Server.Instance = serveInstance
	}
	if flags.Changed("cert") {
		cfg.Server.CertPath = serveCert
	}
	if flags.Changed("key") {
		cfg.Server.KeyPath = serveKey
	}

	if (cfg.Server.CertPath == "") != (cfg.Server.KeyPath == "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}

	ctx, cancel := signalContext()
	defer cancel()

	hub := server.NewHub()
	ctrl, err := newController(cfg, hub)
	if err != nil {
		return err
	}

	srv, err := server.New(&server.Config{
		Addr:     cfg.Server.Addr,
		CertPath: cfg.Server.CertPath,
		KeyPath:  cfg.Server.KeyPath,
	}, ctrl, hub)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr, err := srv.Listen()
	if err != nil {
		return err
	}

	scheme := "http"
	if cfg.Server.CertPath != "" {
		scheme = "https"
	}
	fmt.Printf("Board ready at %s://%s/\n", scheme, displayAddr(addr))

	if cfg.Server.Announce {
		port := 0
		if tcp, ok := addr.(*net.TCPAddr); ok {
			port = tcp.Port
		}
		ann, err := discovery.Announce(cfg.Server.Instance, port, version.Version)
		if err != nil {
			// the board still works without the announcement
			logging.Warn("Announcement failed", zap.Error(err))
		} else {
			defer ann.Shutdown()
		}
	}

	return srv.Serve(ctx)
}

// displayAddr turns a wildcard listen address into something clickable
func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || !tcp.IP.IsUnspecified() {
		return addr.String()
	}
	return net.JoinHostPort("localhost", strconv.Itoa(tcp.Port))
}

// dealCmd prints a host sheet
var dealJSON bool

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal a board and print it with the answers",
	Long: `Deal a fresh board and print every clue with its answer.

This is the host's sheet: run it before a game read aloud, or to check
what the API returns. Requests are paced exactly as in a game.`,
	Example: `  # Print a host sheet
  jeopardy deal

  # Machine-readable board
  jeopardy deal --json > board.json`,
	RunE: runDeal,
}

func init() {
	dealCmd.Flags().BoolVar(&dealJSON, "json", false, "Print the board as JSON instead of a sheet")
}

func runDeal(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pacer, err := cfg.NewPacer()
	if err != nil {
		return err
	}
	client := trivia.NewClientWithOptions(cfg.ClientOptions())

	ctx, cancel := signalContext()
	defer cancel()

	if dealJSON {
		categories, err := game.Deal(ctx, client, pacer, nil)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(categories)
	}

	stepNames := []string{"Choose categories"}
	for i := 1; i <= board.NumCategories; i++ {
		stepNames = append(stepNames, fmt.Sprintf("Category %d", i))
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Host Sheet",
		Command: "jeopardy deal",
		Params: map[string]string{
			"API":    cfg.API.BaseURL,
			"Pacing": fmt.Sprintf("%s, %s", cfg.Pacing.Mode, cfg.Pacing.Delay),
		},
		TotalSteps:   len(stepNames),
		StepNames:    stepNames,
		Troubleshoot: troubleshoot,
	})

	var categories []board.Category
	err = runner.Run(func(onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "", ui.StepRunning, "")
		var dealErr error
		categories, dealErr = game.Deal(ctx, client, pacer, func(done, total int, label string) {
			if done == 0 {
				onStep(1, "", ui.StepComplete, fmt.Sprintf("%d categories", total))
				onStep(2, "", ui.StepRunning, "")
				return
			}
			onStep(done+1, label, ui.StepComplete, "")
			if done < total {
				onStep(done+2, "", ui.StepRunning, "")
			}
		})
		if dealErr != nil {
			return nil, dealErr
		}
		return map[string]string{
			"Categories": strconv.Itoa(len(categories)),
			"Clues":      strconv.Itoa(len(categories) * board.NumClues),
		}, nil
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.RenderSheet(categories, ui.GetTerminalWidth()))
	return nil
}

// scanCmd finds browser boards on the network
var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find boards served on the local network",
	Long: `Find browser boards announced with 'jeopardy serve --announce'.

This command listens for mDNS announcements and lists every board that
answers with the address to open in a browser.`,
	Example: `  # Scan for 5 seconds (default)
  jeopardy scan

  # Longer scan for busy networks
  jeopardy scan --timeout 15s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Scan timeout (default from config, 5s)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	timeout := cfg.Preferences.ScanTimeout
	if cmd.Flags().Changed("timeout") {
		timeout = scanTimeout
	}

	ctx, cancel := signalContext()
	defer cancel()

	p := ui.NewPrinter(os.Stdout)
	p.PrintHeader("Board Scan", "jeopardy scan", map[string]string{
		"Service": discovery.ServiceType,
		"Timeout": timeout.String(),
	})

	boards, err := discovery.Scan(ctx, timeout)
	if err != nil {
		p.PrintError("Scan failed", err, []string{
			"Allow mDNS (UDP port 5353) through the firewall",
			"Check that a network interface is up",
		})
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(boards) == 0 {
		p.PrintWarning("No boards found", map[string]string{
			"Start a board": "jeopardy serve --announce",
			"Network":       "both machines must share a LAN with mDNS allowed",
			"Slow networks": "increase --timeout",
		})
		return nil
	}

	for i, b := range boards {
		r := ui.NewSuccessResult(fmt.Sprintf("%d. %s", i+1, b.Instance), nil).
			SetWidth(p.Width()).
			AddDetail("Open", b.URL()).
			AddDetail("Host", b.Hostname)
		if v := b.GetMetadata("version"); v != "" {
			r.AddDetail("Version", v)
		}
		p.Println(r.Render())
	}
	return nil
}

// checkCmd probes the trivia API
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the trivia API is reachable",
	Long: `Send a single small request to the trivia API and report the result.

Use this when a board fails to deal: the failure box lists likely causes.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client := trivia.NewClientWithOptions(cfg.ClientOptions())

	ctx, cancel := signalContext()
	defer cancel()

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:        "API Check",
		Command:      "jeopardy check",
		Params:       map[string]string{"API": cfg.API.BaseURL},
		TotalSteps:   1,
		StepNames:    []string{"Request one category"},
		Troubleshoot: troubleshoot,
	})

	return runner.Run(func(onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "", ui.StepRunning, "")
		start := time.Now()
		if err := client.Ping(ctx); err != nil {
			onStep(1, "", ui.StepFailed, trivia.ShortMessage(err))
			return nil, err
		}
		latency := time.Since(start)
		onStep(1, "", ui.StepComplete, "")
		return map[string]string{
			"API":     cfg.API.BaseURL,
			"Latency": latency.Round(time.Millisecond).String(),
		}, nil
	})
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		fmt.Println(path)
		return nil
	},
}

var showEnv bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file, the environment and any flags
have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showEnv {
			desc, err := config.EnvDescription()
			if err != nil {
				return err
			}
			fmt.Println(desc)
			return nil
		}

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		p := ui.NewPrinter(os.Stdout)
		p.PrintSuccess("Effective configuration", map[string]string{
			"API URL":        cfg.API.BaseURL,
			"API timeout":    cfg.API.Timeout.String(),
			"Pool size":      strconv.Itoa(cfg.API.PoolSize),
			"Retries":        strconv.Itoa(cfg.API.MaxRetries),
			"Cache":          cfg.API.CacheDuration.String(),
			"Pacing":         cfg.Pacing.Mode,
			"Pacing delay":   cfg.Pacing.Delay.String(),
			"Serve address":  cfg.Server.Addr,
			"Announce":       strconv.FormatBool(cfg.Server.Announce),
			"Auto start":     strconv.FormatBool(cfg.Preferences.AutoStart),
			"Scan timeout":   cfg.Preferences.ScanTimeout.String(),
			"Config present": strconv.FormatBool(config.Exists(configPath)),
		})
		return nil
	},
}

var forceInit bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if config.Exists(path) && !forceInit {
			ok := ui.Confirm(os.Stdin, os.Stdout, "Config file exists",
				[]string{path + " will be replaced with the defaults."},
				"Overwrite it?")
			if !ok {
				fmt.Println("Left unchanged.")
				return nil
			}
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}
		ui.NewPrinter(os.Stdout).PrintSuccess("Config written", map[string]string{"Path": path})
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&showEnv, "env", false, "List the environment variables instead")
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

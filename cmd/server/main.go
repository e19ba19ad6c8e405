package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hazyhaar/greeklish/pkg/api"
	"github.com/hazyhaar/greeklish/pkg/profile"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr           string `yaml:"addr"`
	ProfilesDir    string `yaml:"profiles_dir"`
	DefaultProfile string `yaml:"default_profile"`
	LogLevel       string `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "translit":
		os.Exit(cmdTranslit(os.Args[2:], os.Stdout, os.Stderr))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: greeklish <command>

Commands:
  serve      Start the HTTP server (REST API + MCP on /mcp)
  mcp        Serve MCP over stdio
  translit   Print the greeklish spellings of Greek words
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fatal(slog.Default(), "config", err)
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		fatal(logger, "failed to load profiles", err)
	}
	logger.Info("profiles loaded", "count", reg.Count(), "default", reg.Default())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP: hot reload profiles.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading profiles")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("profiles reloaded", "count", reg.Count())
			}
		}
	}()

	go func() {
		logger.Info("greeklish listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fatal(slog.Default(), "config", err)
	}
	// stdout carries the protocol; logs go to stderr only.
	logger := newLogger(os.Stderr, cfg.LogLevel)

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		fatal(logger, "failed to load profiles", err)
	}
	if err := server.ServeStdio(api.NewMCPServer(reg, logger)); err != nil {
		fatal(logger, "mcp stdio", err)
	}
}

// cmdTranslit prints one spelling per line. Flags set explicitly override
// the selected profile's settings.
func cmdTranslit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("translit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	profileID := fs.String("profile", "", "profile id (default profile when empty)")
	maxExp := fs.Int("max", 0, "maximum spellings per candidate word")
	variants := fs.Bool("variants", true, "also transliterate inflected forms")
	special := fs.Bool("special", false, "use the keyboard-layout mapping")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "translit: no words given")
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "translit: %v\n", err)
		return 1
	}
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logger := newLogger(stderr, cfg.LogLevel)

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "translit: %v\n", err)
		return 1
	}
	p, err := reg.Get(*profileID)
	if err != nil {
		fmt.Fprintf(stderr, "translit: %v\n", err)
		return 1
	}

	m := *p.Manifest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max":
			m.MaxExpansions = *maxExp
		case "variants":
			m.GreekVariants = *variants
		case "special":
			m.UseSpecialMapping = *special
		}
	})
	if p, err = profile.New(&m, logger); err != nil {
		fmt.Fprintf(stderr, "translit: %v\n", err)
		return 2
	}

	for _, word := range fs.Args() {
		res := p.Transliterate(word)
		if !res.Applicable {
			fmt.Fprintf(stderr, "translit: %q is not a lowercase unaccented Greek word, skipped\n", word)
			continue
		}
		for _, s := range res.Spellings {
			fmt.Fprintln(stdout, s)
		}
	}
	return 0
}

func openRegistry(cfg config, logger *slog.Logger) (*profile.Registry, error) {
	reg := profile.NewRegistry(cfg.ProfilesDir, logger)
	if err := reg.Load(); err != nil {
		return nil, err
	}
	if err := reg.SetDefault(cfg.DefaultProfile); err != nil {
		return nil, fmt.Errorf("default_profile: %w", err)
	}
	return reg, nil
}

func loadConfig(path string) (config, error) {
	cfg := config{
		Addr:           ":8421",
		ProfilesDir:    "profiles",
		DefaultProfile: profile.DefaultID,
		LogLevel:       "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}

func newLogger(w io.Writer, levelName string) *slog.Logger {
	level, err := parseLevel(levelName)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"stockdash/internal/config"
	"stockdash/internal/market"
	"stockdash/internal/ui"
	"stockdash/internal/ui/views"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Nothing is logged until the log file is open
	log.SetOutput(io.Discard)

	flags, err := config.ParseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if flags.Help {
		fmt.Print(flags.Usage())
		return 0
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stockdash needs a terminal")
		return 1
	}

	// Set up logging
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
		if logFile, err := tea.LogToFile(cfg.LogFile, "stockdash"); err == nil {
			defer logFile.Close()
		}
	}
	log.Printf("Starting with %s %s (source %s)", cfg.Symbol, cfg.TimeFrame, cfg.Source)

	src, err := newSource(cfg)
	if err != nil {
		log.Printf("Error creating market source: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, market.ErrNoAPIKey) {
			fmt.Fprintf(os.Stderr, "Set %s (or put it in .env), or run with --demo\n", cfg.APIKeyEnv)
		}
		return 1
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	zones := views.NewZones()
	defer zones.Close()

	model := ui.NewModel(cfg, src, zones)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	log.Printf("UI exited normally")
	return 0
}

// loadConfig reads the config file named on the command line, or the user's
// config file, and applies the flags on top
func loadConfig(flags *config.Flags) (*config.Config, error) {
	svc := config.NewConfigService()
	var (
		cfg *config.Config
		err error
	)
	if flags.ConfigPath != "" {
		cfg, err = svc.LoadFromPath(flags.ConfigPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := config.ApplyFlags(cfg, flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSource builds the configured market source behind the fetch cache
func newSource(cfg *config.Config) (market.Source, error) {
	var src market.Source
	switch cfg.Source {
	case config.SourceDemo:
		src = market.NewDemoSource()
	default:
		polygon, err := market.NewPolygonSource(cfg.APIKey(), nil, cfg.FetchTimeout.Duration)
		if err != nil {
			return nil, err
		}
		src = polygon
	}
	return market.NewCachedSource(src, cfg.CacheSize, cfg.CacheTTL.Duration), nil
}

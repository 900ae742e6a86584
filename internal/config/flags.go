package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"stockdash/internal/domain"
)

// Flags holds the parsed command line
type Flags struct {
	fs         *pflag.FlagSet
	Symbol     string
	TimeFrame  string
	Indicator  string
	ConfigPath string
	Demo       bool
	Help       bool
}

// ParseFlags parses args (without the program name)
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{fs: pflag.NewFlagSet("stockdash", pflag.ContinueOnError)}
	f.fs.StringVarP(&f.Symbol, "symbol", "s", "", "stock symbol to show")
	f.fs.StringVarP(&f.TimeFrame, "time-frame", "t", "", "time frame: 5d 1mo 3mo 6mo ytd 1y 2y 5y 10y max")
	f.fs.StringVarP(&f.Indicator, "indicator", "i", "", "indicator: sma ema bollinger none")
	f.fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file path")
	f.fs.BoolVar(&f.Demo, "demo", false, "use generated prices instead of the market data API")
	f.fs.BoolVarP(&f.Help, "help", "h", false, "show usage")

	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	if f.fs.NArg() > 0 && f.Symbol == "" {
		f.Symbol = f.fs.Arg(0)
	}
	return f, nil
}

// Usage returns the flag help text
func (f *Flags) Usage() string {
	return "Usage: stockdash [flags] [symbol]\n\n" + f.fs.FlagUsages()
}

// ApplyFlags overrides cfg with every flag given on the command line
func ApplyFlags(cfg *Config, f *Flags) error {
	if s := strings.TrimSpace(f.Symbol); s != "" {
		cfg.Symbol = s
	}
	if f.fs.Changed("time-frame") {
		tf, err := domain.ParseTimeFrame(f.TimeFrame)
		if err != nil {
			return fmt.Errorf("--time-frame: %w", err)
		}
		cfg.TimeFrame = tf
	}
	if f.fs.Changed("indicator") {
		if _, _, err := domain.ParseIndicator(f.Indicator); err != nil {
			return fmt.Errorf("--indicator: %w", err)
		}
		cfg.Indicator = f.Indicator
	}
	if f.Demo {
		cfg.Source = SourceDemo
	}
	return cfg.Validate()
}

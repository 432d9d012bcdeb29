package app

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"lifegate/internal/challenge"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Challenge string `toml:"challenge"`
	Sim       string `toml:"sim"`
	Scale     int    `toml:"scale"`
	TPS       int    `toml:"tps"`
	GPS       int    `toml:"gps"`
	Seed      int64  `toml:"seed"`
	Workers   int    `toml:"workers"`
	HUDWidth  int    `toml:"hud_width"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "life",
		Scale:    6,
		TPS:      60,
		GPS:      10,
		Seed:     42,
		Workers:  runtime.NumCPU(),
		HUDWidth: 220,
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := NewConfig()
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", filename, err)
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Challenge, "challenge", c.Challenge, "challenge descriptor (JSON); empty runs the sandbox sim")
	fs.StringVar(&c.Sim, "sim", c.Sim, "sandbox simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.GPS, "gps", c.GPS, "generations per second while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for sandbox reset")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent scenario runs when verifying")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "status panel width in pixels (0 hides it)")
}

// Parse builds the configuration from args. A -config file is loaded
// first so that flags given alongside it override its values.
func Parse(name string, args []string) (*Config, error) {
	path, err := configPath(name, args)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "TOML configuration file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	NewConfig().Bind(fs)
	if err := fs.Parse(args); err != nil {
		// Reported by the second pass.
		return "", nil
	}
	return *path, nil
}

// LoadChallenge decodes and validates the descriptor at path.
func LoadChallenge(path string) (*challenge.Challenge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ch, err := challenge.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ch, nil
}

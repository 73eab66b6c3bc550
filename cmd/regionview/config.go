package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/diag"
)

// Config holds regionview settings. Values come from defaults, then the
// config file, then command-line flags.
type Config struct {
	Document    string        `yaml:"document"`
	Policy      string        `yaml:"policy"`
	LogFile     string        `yaml:"log_file"`
	LogLevel    string        `yaml:"log_level"`
	AssetDir    string        `yaml:"asset_dir"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	OriginX     int           `yaml:"origin_x"`
	OriginY     int           `yaml:"origin_y"`
	OutputLines int           `yaml:"output_lines"`
}

func defaultConfig() Config {
	return Config{
		Policy:      diag.Log.String(),
		LogLevel:    "info",
		HTTPTimeout: assets.DefaultHTTPTimeout,
		OutputLines: 5,
	}
}

// loadConfig reads a YAML config file over cfg.
func loadConfig(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseArgs builds the effective Config. Flags given explicitly override the
// config file; the document may also be the single positional argument.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("regionview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := defaultConfig()
	configPath := fs.String("config", "", "YAML config file")
	doc := fs.String("doc", def.Document, "FSM document (.yaml, .json or .msgpack)")
	policy := fs.String("policy", def.Policy, "diagnostic policy: drop, log, detail or escalate")
	logFile := fs.String("log", def.LogFile, "write logs to this file")
	logLevel := fs.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	assetDir := fs.String("assets", def.AssetDir, "directory relative image locators are read from")
	timeout := fs.Duration("http-timeout", def.HTTPTimeout, "timeout for http(s) image fetches")
	originX := fs.Int("x", def.OriginX, "column of the component origin")
	originY := fs.Int("y", def.OriginY, "row of the component origin")
	lines := fs.Int("lines", def.OutputLines, "print output lines kept on screen")

	if err := fs.Parse(args); err != nil {
		return def, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath, cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "doc":
			cfg.Document = *doc
		case "policy":
			cfg.Policy = *policy
		case "log":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "assets":
			cfg.AssetDir = *assetDir
		case "http-timeout":
			cfg.HTTPTimeout = *timeout
		case "x":
			cfg.OriginX = *originX
		case "y":
			cfg.OriginY = *originY
		case "lines":
			cfg.OutputLines = *lines
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Document = fs.Arg(0)
	default:
		return cfg, errors.New("at most one document may be given")
	}

	if cfg.Document == "" {
		return cfg, errors.New("no document given")
	}
	if _, err := diag.ParsePolicy(cfg.Policy); err != nil {
		return cfg, err
	}
	if cfg.OutputLines < 0 {
		cfg.OutputLines = 0
	}
	return cfg, nil
}

package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Output configuration
	OutputDir     string `long:"output-dir" env:"OUTPUT_DIR" default:"dist" description:"Directory receiving generated icon lists"`
	SourcesFile   string `long:"sources" env:"SOURCES_FILE" default:"sources.yml" description:"YAML file with icon set source definitions (optional)"`
	SchemaPath    string `long:"schema" env:"MATERIAL_SCHEMA" default:"schemas/material-schema.json" description:"JSON Schema (2020-12) for the Material metadata payload"`
	Compression   string `long:"compression" env:"COMPRESSION" default:"native" choice:"native" choice:"command" description:"Brotli compression backend"`
	BrotliCommand string `long:"brotli-command" env:"BROTLI_COMMAND" default:"brotli -q 11 -f -k $INPUT" description:"External compression command, $INPUT is replaced with the minified file path"`

	// Run configuration
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"60" description:"Timeout in seconds for a single upstream request"`
	Only         string `long:"only" env:"ONLY_SETS" description:"Comma separated list of icon sets to process (material, lucide, phosphor)"`
	DBPath       string `long:"db-path" env:"DB_PATH" description:"SQLite file recording run history (optional)"`

	// Server configuration
	Serve bool   `long:"serve" env:"SERVE" description:"Serve generated lists over HTTP after processing"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Icon Lists/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.FetchTimeout < 1 {
		return nil, fmt.Errorf("fetch timeout must be at least 1 second, got %d", raw.FetchTimeout)
	}

	return &Cfg{
		OutputDir:     raw.OutputDir,
		SourcesFile:   raw.SourcesFile,
		SchemaPath:    raw.SchemaPath,
		Compression:   raw.Compression,
		BrotliCommand: raw.BrotliCommand,
		FetchTimeout:  raw.FetchTimeout,
		Only:          splitList(raw.Only),
		DBPath:        raw.DBPath,
		Serve:         raw.Serve,
		Port:          raw.Port,
		UserAgent:     raw.UserAgent,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

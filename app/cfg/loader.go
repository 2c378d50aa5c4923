package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	Port   string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath string `long:"db-path" env:"DB_PATH" default:"./lain-tv.db" description:"Path to the SQLite catalog database"`

	// Content source configuration
	SourceURL        string `long:"source-url" env:"SOURCE_URL" default:"https://api.odysee.com/api/v1/proxy?method=claim_search&page_size=20&order_by=trending_mixed" description:"External content source endpoint"`
	SourceFormat     string `long:"source-format" env:"SOURCE_FORMAT" default:"claims" choice:"claims" choice:"rss" description:"Content source payload format"`
	MaxResponseBytes int64  `long:"max-response-bytes" env:"MAX_RESPONSE_BYTES" default:"10000" description:"Maximum accepted content source response size in bytes"`
	FetchTimeout     int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Content source request timeout in seconds"`

	// Access control
	ServiceIdentity string `long:"service-identity" env:"SERVICE_IDENTITY" description:"Identity the service presents as itself; always passes the admin check"`

	// Application metadata
	SeedFile  string `long:"seed-file" env:"SEED_FILE" default:"./seed.yaml" description:"Optional YAML file with initial videos, applied when the catalog is empty"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Lain TV/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:             raw.Port,
		DBPath:           raw.DBPath,
		SourceURL:        raw.SourceURL,
		SourceFormat:     raw.SourceFormat,
		MaxResponseBytes: raw.MaxResponseBytes,
		FetchTimeout:     raw.FetchTimeout,
		ServiceIdentity:  raw.ServiceIdentity,
		SeedFile:         raw.SeedFile,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

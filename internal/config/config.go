// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, a .env
// file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	// An empty DSN selects the in-memory stores.
	DatabaseDSN string

	// TokenSecret is the HMAC secret used to sign identity tokens.
	TokenSecret string

	// TokenTTL is the lifetime of issued tokens. Zero disables expiry.
	TokenTTL time.Duration

	// LogLevel is the minimum zap level.
	LogLevel string

	// PurgeInterval is how often soft-deleted resources are purged.
	PurgeInterval time.Duration

	// PurgeRetention is how long soft-deleted resources are kept.
	PurgeRetention time.Duration

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string
	TLSKey  string

	// Config is the path to the Config file.
	Config string
}

// fileOptions mirrors Options for the JSON config file, with durations
// written as strings such as "72h".
type fileOptions struct {
	Port           *string `json:"server_address"`
	DatabaseDSN    *string `json:"database_dsn"`
	TokenSecret    *string `json:"token_secret"`
	TokenTTL       *string `json:"token_ttl"`
	LogLevel       *string `json:"log_level"`
	PurgeInterval  *string `json:"purge_interval"`
	PurgeRetention *string `json:"purge_retention"`
	TLSCert        *string `json:"tls_cert"`
	TLSKey         *string `json:"tls_key"`
}

const (
	defaultTokenTTL       = 72 * time.Hour
	defaultPurgeInterval  = time.Hour
	defaultPurgeRetention = 30 * 24 * time.Hour
)

// Parse reads the process arguments and environment. It exits the process
// on malformed input.
func Parse() *Options {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	options, err := parse(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return options
}

// parse applies flags, then the JSON config file, then environment
// variables, each overriding the previous source.
func parse(args []string, lookupEnv func(string) (string, bool)) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("notekeeper", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.TokenSecret, "s", "", "token signing secret")
	fs.DurationVar(&options.TokenTTL, "t", defaultTokenTTL, "token lifetime, 0 disables expiry")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.DurationVar(&options.PurgeInterval, "purge-interval", defaultPurgeInterval, "soft-delete purge interval")
	fs.DurationVar(&options.PurgeRetention, "purge-retention", defaultPurgeRetention, "soft-delete retention")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS key")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath, ok := lookupEnv("CONFIG"); ok && configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := loadFile(options.Config, options); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnv(options, lookupEnv); err != nil {
		return nil, err
	}

	return options, nil
}

func loadFile(path string, options *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	setString(&options.Port, f.Port)
	setString(&options.DatabaseDSN, f.DatabaseDSN)
	setString(&options.TokenSecret, f.TokenSecret)
	setString(&options.LogLevel, f.LogLevel)
	setString(&options.TLSCert, f.TLSCert)
	setString(&options.TLSKey, f.TLSKey)
	for _, d := range []struct {
		dst *time.Duration
		src *string
		key string
	}{
		{&options.TokenTTL, f.TokenTTL, "token_ttl"},
		{&options.PurgeInterval, f.PurgeInterval, "purge_interval"},
		{&options.PurgeRetention, f.PurgeRetention, "purge_retention"},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("error while parsing config file: %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func applyEnv(options *Options, lookupEnv func(string) (string, bool)) error {
	if port, ok := lookupEnv("PORT"); ok && port != "" {
		options.Port = ":" + port
	}
	if serverAddress, ok := lookupEnv("SERVER_ADDRESS"); ok && serverAddress != "" {
		options.Port = serverAddress
	}
	for key, dst := range map[string]*string{
		"DATABASE_DSN": &options.DatabaseDSN,
		"TOKEN_SECRET": &options.TokenSecret,
		"LOG_LEVEL":    &options.LogLevel,
		"TLS_CERT":     &options.TLSCert,
		"TLS_KEY":      &options.TLSKey,
	} {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	for key, dst := range map[string]*time.Duration{
		"TOKEN_TTL":       &options.TokenTTL,
		"PURGE_INTERVAL":  &options.PurgeInterval,
		"PURGE_RETENTION": &options.PurgeRetention,
	} {
		v, ok := lookupEnv(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Duration wraps time.Duration so TOML values like "30s" decode.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for toml.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config holds everything the server needs at startup. Values come from
// compiled-in defaults, optionally overridden by a TOML file.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	FunFact FunFactConfig `toml:"funfact"`
	Rates   RatesConfig   `toml:"rates"`
}

type ServerConfig struct {
	Port         string   `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	IdleTimeout  Duration `toml:"idle_timeout"`
	JSONLogs     bool     `toml:"json_logs"`
}

type StorageConfig struct {
	Path string `toml:"path"` // SQLite database file
}

type FunFactConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

type RatesConfig struct {
	BaseURL         string   `toml:"base_url"`
	CountriesURL    string   `toml:"countries_url"`
	RefreshInterval Duration `toml:"refresh_interval"`
	Enabled         bool     `toml:"enabled"`
}

// Defaults returns the configuration for this version of the binary.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			IdleTimeout:  Duration{60 * time.Second},
		},
		Storage: StorageConfig{
			Path: "strings.db",
		},
		FunFact: FunFactConfig{
			BaseURL: "http://numbersapi.com",
			Timeout: Duration{5 * time.Second},
		},
		Rates: RatesConfig{
			BaseURL:         "https://open.er-api.com/v6/latest/USD",
			CountriesURL:    "https://restcountries.com/v3.1/all?fields=name,currencies",
			RefreshInterval: Duration{6 * time.Hour},
			Enabled:         true,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// fine (defaults apply); a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

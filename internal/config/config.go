// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Xuanwo/go-locale"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"

	"github.com/wneessen/geocsv/internal/geocode"
)

const configEnv = "GEOCSV"

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	GeoCoder struct {
		// Allowed values: nominatim, opencage, geocode-earth
		Provider string `fig:"provider" default:"nominatim"`
		APIKey   string `fig:"apikey"`
		// Only used by the nominatim provider, for self-hosted instances
		Endpoint string `fig:"endpoint"`
		// BCP 47 tag of the address language, detected from the environment if empty
		Language string `fig:"language"`
	} `fig:"geocoder"`

	MapLinks struct {
		Enabled bool `fig:"enabled"`
		// Allowed values: google, osm
		Format string `fig:"format" default:"google"`
	} `fig:"maplinks"`

	CSV struct {
		Delimiter string `fig:"delimiter" default:","`
	} `fig:"csv"`

	Pipeline struct {
		// Number of rows that are geocoded in parallel
		Concurrency int `fig:"concurrency" default:"1"`
	} `fig:"pipeline"`

	Server struct {
		Listen          string        `fig:"listen" default:"127.0.0.1:8080"`
		MaxUploadSize   int64         `fig:"max_upload_size" default:"33554432"`
		ResultTTL       time.Duration `fig:"result_ttl" default:"1h"`
		CleanupInterval time.Duration `fig:"cleanup_interval" default:"5m"`
		Filename        string        `fig:"filename" default:"updated_addresses.csv"`
	} `fig:"server"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.GeoCoder.Provider) {
	case "nominatim", "opencage", "geocode-earth":
	default:
		return fmt.Errorf("unsupported geocoder provider: %s", c.GeoCoder.Provider)
	}
	if c.GeoCoder.Language == "" {
		c.GeoCoder.Language = detectLanguage().String()
	}
	if _, err := language.Parse(c.GeoCoder.Language); err != nil {
		return fmt.Errorf("invalid geocoder language %q: %w", c.GeoCoder.Language, err)
	}
	format, err := geocode.ParseLinkFormat(c.MapLinks.Format)
	if err != nil {
		return err
	}
	if c.MapLinks.Enabled && format == geocode.LinkNone {
		return fmt.Errorf("map links are enabled but no map link format is set")
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character: %q", c.CSV.Delimiter)
	}
	if strings.ContainsAny(c.CSV.Delimiter, "\"\r\n") {
		return fmt.Errorf("invalid CSV delimiter: %q", c.CSV.Delimiter)
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("invalid pipeline concurrency: %d", c.Pipeline.Concurrency)
	}
	if c.Server.MaxUploadSize < 1 {
		return fmt.Errorf("invalid max upload size: %d", c.Server.MaxUploadSize)
	}
	if c.Server.ResultTTL <= 0 || c.Server.CleanupInterval <= 0 {
		return fmt.Errorf("result TTL and cleanup interval must be positive")
	}
	if c.Server.Filename == "" {
		return fmt.Errorf("download filename must not be empty")
	}

	return nil
}

// Language returns the language tag that is sent to the geocoding provider.
func (c *Config) Language() language.Tag {
	return language.Make(c.GeoCoder.Language)
}

// Delimiter returns the CSV field delimiter.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// LinkFormat returns the map link format, or geocode.LinkNone if map links are disabled.
func (c *Config) LinkFormat() geocode.LinkFormat {
	if !c.MapLinks.Enabled {
		return geocode.LinkNone
	}
	format, _ := geocode.ParseLinkFormat(c.MapLinks.Format)
	return format
}

func detectLanguage() language.Tag {
	tag, err := locale.Detect()
	if err != nil || tag == language.Und {
		return language.English // Unable to detect locale, fallback to English
	}
	base, _ := tag.Base()
	return language.Make(base.String())
}

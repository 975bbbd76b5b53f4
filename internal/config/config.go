// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the settings of the qr command from a YAML
// file, the environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/unixdj/qrenc/coding"
	"go.uber.org/zap/zapcore"
)

// Formats lists the output types, in the order shown in the usage.
var Formats = []string{"png", "pbm", "bmp", "tiff", "eps", "utf8", "ascii"}

// Config holds the settings of the qr command.
type Config struct {
	Level    string    `koanf:"level"`    // error correction level
	Scale    int       `koanf:"scale"`    // pixels per module
	Margin   int       `koanf:"margin"`   // quiet zone modules
	Format   string    `koanf:"format"`   // output type; "" picks by TTY
	Parallel bool      `koanf:"parallel"` // concurrent mask trials
	Log      LogConfig `koanf:"log"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level    string `koanf:"level"`    // debug, info, warn, error
	Encoding string `koanf:"encoding"` // console or json
}

// Load reads the configuration.  If path is empty, $QR_CONFIG is
// used; if that is empty too, only the environment and defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("QR_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	if err := applyEnvOverrides(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "level", "L")
	setDefault(k, "scale", 4)
	setDefault(k, "margin", 4)
	setDefault(k, "format", "")
	setDefault(k, "parallel", false)

	setDefault(k, "log.level", "info")
	setDefault(k, "log.encoding", "console")
}

func applyEnvOverrides(k *koanf.Koanf) error {
	for _, v := range []struct {
		env, key string
		parse    func(string) (any, error)
	}{
		{"QR_LEVEL", "level", parseString},
		{"QR_SCALE", "scale", parseInt},
		{"QR_MARGIN", "margin", parseInt},
		{"QR_FORMAT", "format", parseString},
		{"QR_PARALLEL", "parallel", parseBool},
		{"QR_LOG_LEVEL", "log.level", parseString},
	} {
		s, ok := os.LookupEnv(v.env)
		if !ok || s == "" {
			continue
		}
		x, err := v.parse(s)
		if err != nil {
			return fmt.Errorf("%s: %w", v.env, err)
		}
		k.Set(v.key, x)
	}
	return nil
}

func parseString(s string) (any, error) { return s, nil }
func parseInt(s string) (any, error)    { return strconv.Atoi(s) }
func parseBool(s string) (any, error)   { return strconv.ParseBool(s) }

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}

// Validate reports every invalid setting in c.
func (c *Config) Validate() error {
	var errs []error
	if _, err := coding.ParseLevel(c.Level); err != nil {
		errs = append(errs, fmt.Errorf("level %q: %w", c.Level, err))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale %d: must be positive", c.Scale))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin %d: must not be negative", c.Margin))
	}
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format %q: must be one of %s",
			c.Format, strings.Join(Formats, ", ")))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		errs = append(errs, fmt.Errorf("log encoding %q: must be console or json",
			c.Log.Encoding))
	}
	return errors.Join(errs...)
}

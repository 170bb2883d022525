// Package config holds widget construction settings and the selectme.yaml
// file format.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/selectme/internal/locale"
	"github.com/ruminaider/selectme/internal/optiontree"
	"github.com/ruminaider/selectme/internal/selection"
)

// ErrInvalidConfig is matched by every ValidationError.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// Is implements error comparison for errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Settings are the construction settings of one widget.
type Settings struct {
	Width          string          `yaml:"width"`
	ColumnCount    int             `yaml:"column_count"`
	Search         bool            `yaml:"search"`
	Locale         string          `yaml:"locale"`
	LocaleResource locale.Resource `yaml:"locale_resource,omitempty"`
	CSSFile        string          `yaml:"css_file"`
}

// File is the on-disk config (selectme.yaml). Unknown keys are ignored.
type File struct {
	Settings `yaml:",inline"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// DefaultSettings returns the built-in widget settings.
func DefaultSettings() Settings {
	return Settings{
		Width:       "100%",
		ColumnCount: 1,
		Search:      true,
		Locale:      locale.DefaultLocale,
		CSSFile:     "selectme.theme.yaml",
	}
}

// Default returns the built-in file config.
func Default() File {
	return File{Settings: DefaultSettings(), LogLevel: "info"}
}

// Parse parses config bytes. Keys absent from data keep their default.
func Parse(data []byte) (File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Marshal serializes a File to YAML bytes.
func Marshal(cfg File) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config at path. A missing file yields Default.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Validate checks the file settings and log level.
func (f File) Validate() error {
	if err := f.Settings.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(f.LogLevel) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return &ValidationError{Field: "log_level", Value: f.LogLevel, Message: "must be debug, info, warn or error"}
	}
}

// Validate checks the widget settings.
func (s Settings) Validate() error {
	if s.ColumnCount < 1 {
		return &ValidationError{Field: "column_count", Value: strconv.Itoa(s.ColumnCount), Message: "must be at least 1"}
	}
	if _, err := ParseWidth(s.Width); err != nil {
		return err
	}
	return nil
}

// Width is a parsed width token: either a percentage of the available width
// or a fixed number of cells.
type Width struct {
	Percent int
	Cells   int
}

// Resolve returns the width in cells for the given available width.
func (w Width) Resolve(available int) int {
	if w.Cells > 0 {
		if w.Cells > available && available > 0 {
			return available
		}
		return w.Cells
	}
	return available * w.Percent / 100
}

// ParseWidth parses tokens like "100%", "40%" or "32".
func ParseWidth(token string) (Width, error) {
	bad := func(msg string) error {
		return &ValidationError{Field: "width", Value: token, Message: msg}
	}
	t := strings.TrimSpace(token)
	if t == "" {
		return Width{}, bad("must not be empty")
	}
	if pct, ok := strings.CutSuffix(t, "%"); ok {
		n, err := strconv.Atoi(pct)
		if err != nil || n < 1 || n > 100 {
			return Width{}, bad("percentage must be between 1% and 100%")
		}
		return Width{Percent: n}, nil
	}
	n, err := strconv.Atoi(t)
	if err != nil || n < 1 {
		return Width{}, bad("must be a percentage or a positive cell count")
	}
	return Width{Cells: n}, nil
}

// Callbacks are the host notifications of one widget. Each receives the name
// of the native select the widget wraps. Nil callbacks are skipped.
type Callbacks struct {
	OnLoad               func(name string)
	OnDropdownOpen       func(name string)
	OnDropdownClose      func(name string)
	OnSearch             func(name, query string)
	OnOptionValueChanged func(name string, opt *optiontree.Option)
}

// Options is the full construction configuration of a widget.
type Options struct {
	Settings
	Callbacks

	// SummaryFormatter overrides the process-wide summary formatter for
	// this widget only.
	SummaryFormatter selection.Formatter
}

// DefaultOptions returns Options built from DefaultSettings with no
// callbacks.
func DefaultOptions() Options {
	return Options{Settings: DefaultSettings()}
}

// Options converts the file settings into widget options.
func (f File) Options() Options {
	return Options{Settings: f.Settings}
}

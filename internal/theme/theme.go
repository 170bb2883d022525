// Package theme turns a stylesheet file into the lipgloss styles a widget is
// drawn with.
package theme

import (
	"errors"
	"fmt"
	"os"
	"sync"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"
)

// Palette is the on-disk stylesheet. Empty fields keep the default colour.
type Palette struct {
	Text     string `yaml:"text"`
	Muted    string `yaml:"muted"`
	Accent   string `yaml:"accent"`
	Selected string `yaml:"selected"`
	Header   string `yaml:"header"`
	Border   string `yaml:"border"`
	Surface  string `yaml:"surface"`
	Key      string `yaml:"key"`
}

// DefaultPalette is the Catppuccin Mocha palette.
func DefaultPalette() Palette {
	f := catppuccin.Mocha
	return Palette{
		Text:     f.Text().Hex,
		Muted:    f.Overlay0().Hex,
		Accent:   f.Blue().Hex,
		Selected: f.Green().Hex,
		Header:   f.Mauve().Hex,
		Border:   f.Surface1().Hex,
		Surface:  f.Surface0().Hex,
		Key:      f.Yellow().Hex,
	}
}

func (p Palette) withDefaults() Palette {
	d := DefaultPalette()
	pick := func(v, fb string) string {
		if v == "" {
			return fb
		}
		return v
	}
	return Palette{
		Text:     pick(p.Text, d.Text),
		Muted:    pick(p.Muted, d.Muted),
		Accent:   pick(p.Accent, d.Accent),
		Selected: pick(p.Selected, d.Selected),
		Header:   pick(p.Header, d.Header),
		Border:   pick(p.Border, d.Border),
		Surface:  pick(p.Surface, d.Surface),
		Key:      pick(p.Key, d.Key),
	}
}

// Theme holds the resolved styles.
type Theme struct {
	Palette Palette

	Trigger        lipgloss.Style // closed-state button
	TriggerFocused lipgloss.Style
	Panel          lipgloss.Style // dropdown border box
	Header         lipgloss.Style // group headers
	Checked        lipgloss.Style
	Unchecked      lipgloss.Style
	Marked         lipgloss.Style // keyboard cursor row
	Disabled       lipgloss.Style
	Muted          lipgloss.Style
	Shortcut       lipgloss.Style
	ShortcutActive lipgloss.Style
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	Label          lipgloss.Style
}

// New builds a theme from p, filling empty colours from DefaultPalette.
func New(p Palette) Theme {
	p = p.withDefaults()
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	return Theme{
		Palette: p,
		Trigger: lipgloss.NewStyle().
			Foreground(c(p.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Border)).
			Padding(0, 1),
		TriggerFocused: lipgloss.NewStyle().
			Foreground(c(p.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Accent)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Accent)).
			Padding(0, 1),
		Header:         lipgloss.NewStyle().Foreground(c(p.Header)).Bold(true),
		Checked:        lipgloss.NewStyle().Foreground(c(p.Selected)),
		Unchecked:      lipgloss.NewStyle().Foreground(c(p.Text)),
		Marked:         lipgloss.NewStyle().Foreground(c(p.Text)).Bold(true),
		Disabled:       lipgloss.NewStyle().Foreground(c(p.Muted)).Strikethrough(true),
		Muted:          lipgloss.NewStyle().Foreground(c(p.Muted)),
		Shortcut:       lipgloss.NewStyle().Foreground(c(p.Accent)),
		ShortcutActive: lipgloss.NewStyle().Foreground(c(p.Accent)).Bold(true).Underline(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(c(p.Muted)).
			Background(c(p.Surface)).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(c(p.Key)).
			Background(c(p.Surface)).
			Bold(true),
		Label: lipgloss.NewStyle().Foreground(c(p.Text)).Bold(true),
	}
}

// Default returns the theme built from DefaultPalette.
func Default() Theme { return New(Palette{}) }

// Parse decodes a stylesheet.
func Parse(data []byte) (Theme, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Theme{}, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return New(p), nil
}

// Load reads and parses a stylesheet from disk.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading stylesheet: %w", err)
	}
	return Parse(data)
}

// Cache loads each stylesheet path at most once.
type Cache struct {
	mu     sync.Mutex
	themes map[string]cached
}

type cached struct {
	theme Theme
	err   error
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{themes: make(map[string]cached)}
}

// Get returns the theme for path, loading it on first use. An empty path or
// a missing file yields the default theme; a missing file also returns an
// error wrapping os.ErrNotExist so callers can log it.
func (c *Cache) Get(path string) (Theme, error) {
	if path == "" {
		return Default(), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.themes[path]; ok {
		return t.theme, t.err
	}
	t, err := Load(path)
	if err != nil {
		t = Default()
		if !errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("stylesheet %s: %w", path, err)
		}
	}
	c.themes[path] = cached{theme: t, err: err}
	return t, err
}

// Len returns the number of cached stylesheets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.themes)
}

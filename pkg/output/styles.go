package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StylesConfig represents the complete styles file
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// styleNames are the styles every registry must provide
var styleNames = []string{"Fatal", "Error", "Info", "Debug"}

// LoadStyles builds a style registry bound to renderer r from YAML data.
// Foregrounds may name an entry of the colors table or be a literal color.
func LoadStyles(data []byte, r *lipgloss.Renderer) (map[string]lipgloss.Style, error) {
	var cfg StylesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	registry := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		registry[name] = buildStyle(r, def, cfg.Colors)
	}
	for _, name := range styleNames {
		if _, ok := registry[name]; !ok {
			registry[name] = r.NewStyle()
		}
	}
	return registry, nil
}

// defaultStyles returns the embedded registry, or plain styles if the
// embedded file is unusable.
func defaultStyles(r *lipgloss.Renderer) map[string]lipgloss.Style {
	registry, err := LoadStyles(embeddedStyles, r)
	if err == nil {
		return registry
	}
	registry = make(map[string]lipgloss.Style, len(styleNames))
	for _, name := range styleNames {
		registry[name] = r.NewStyle()
	}
	return registry
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]ColorDef) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
		} else {
			style = style.Foreground(lipgloss.Color(def.Foreground))
		}
	}

	return style
}

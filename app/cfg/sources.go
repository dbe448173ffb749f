package cfg

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SetMaterial = "material"
	SetLucide   = "lucide"
	SetPhosphor = "phosphor"
)

const (
	DefaultMaterialURL         = "https://fonts.google.com/metadata/icons?&key=material_symbols&incomplete=true"
	DefaultPhosphorURL         = "https://cdn.jsdelivr.net/gh/phosphor-icons/core@main/src/icons.ts"
	DefaultLucideIconsDir      = "lucide/icons"
	DefaultLucideCategoriesDir = "lucide/categories"
)

// Sources describes where each icon set is read from.
type Sources struct {
	Material MaterialSource `yaml:"material"`
	Lucide   LucideSource   `yaml:"lucide"`
	Phosphor PhosphorSource `yaml:"phosphor"`
}

type MaterialSource struct {
	Enabled *bool  `yaml:"enabled"`
	URL     string `yaml:"url"`
}

type LucideSource struct {
	Enabled       *bool  `yaml:"enabled"`
	IconsDir      string `yaml:"icons_dir"`
	CategoriesDir string `yaml:"categories_dir"`
}

type PhosphorSource struct {
	Enabled *bool  `yaml:"enabled"`
	URL     string `yaml:"url"`
}

func (s MaterialSource) IsEnabled() bool { return isEnabled(s.Enabled) }
func (s LucideSource) IsEnabled() bool   { return isEnabled(s.Enabled) }
func (s PhosphorSource) IsEnabled() bool { return isEnabled(s.Enabled) }

func isEnabled(v *bool) bool {
	return v == nil || *v
}

// LoadSources reads the source definitions file. A missing file yields the
// built-in defaults.
func LoadSources(path string) (*Sources, error) {
	var sources Sources

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Debug("Sources file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &sources); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	sources.applyDefaults()

	if err := sources.validate(); err != nil {
		return nil, fmt.Errorf("invalid sources %s: %w", path, err)
	}

	return &sources, nil
}

func (s *Sources) applyDefaults() {
	if s.Material.URL == "" {
		s.Material.URL = DefaultMaterialURL
	}
	if s.Phosphor.URL == "" {
		s.Phosphor.URL = DefaultPhosphorURL
	}
	if s.Lucide.IconsDir == "" {
		s.Lucide.IconsDir = DefaultLucideIconsDir
	}
	if s.Lucide.CategoriesDir == "" {
		s.Lucide.CategoriesDir = DefaultLucideCategoriesDir
	}
}

func (s *Sources) validate() error {
	if s.Lucide.IconsDir == s.Lucide.CategoriesDir {
		return fmt.Errorf("lucide icons_dir and categories_dir must differ")
	}

	if !s.Material.IsEnabled() && !s.Lucide.IsEnabled() && !s.Phosphor.IsEnabled() {
		return fmt.Errorf("at least one icon set must be enabled")
	}

	return nil
}

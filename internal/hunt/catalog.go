package hunt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"socdash/pkg/models"
)

//go:embed catalog.yml
var defaultCatalog []byte

// Template is the fixed shape of a finding produced by the simulated backend.
type Template struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Confidence  int      `yaml:"confidence"`
	Severity    string   `yaml:"severity"`
	Tactic      string   `yaml:"tactic"`
	Technique   string   `yaml:"technique"`
	Artifacts   []string `yaml:"artifacts"`
}

// Category is a keyword family and the finding it contributes when matched.
type Category struct {
	Template `yaml:",inline"`
	Keywords []string `yaml:"keywords"`
}

// Catalog lists the keyword categories and the canned fallback pool.
type Catalog struct {
	Version    int        `yaml:"version"`
	Categories []Category `yaml:"categories"`
	Fallback   []Template `yaml:"fallback"`
}

// DefaultCatalog returns the built-in catalogue.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalogue from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hunt catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalogue.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse hunt catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" {
			return fmt.Errorf("category %d: id is required", i+1)
		}
		if _, dup := seen[cat.ID]; dup {
			return fmt.Errorf("category %s: duplicate id", cat.ID)
		}
		seen[cat.ID] = struct{}{}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %s: at least one keyword is required", cat.ID)
		}
		if err := cat.Template.validate(); err != nil {
			return fmt.Errorf("category %s: %w", cat.ID, err)
		}
	}
	for _, tpl := range c.Fallback {
		if err := tpl.validate(); err != nil {
			return fmt.Errorf("fallback %s: %w", tpl.ID, err)
		}
	}
	return nil
}

func (t Template) validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.Confidence < 0 || t.Confidence > 100 {
		return fmt.Errorf("confidence %d out of range [0,100]", t.Confidence)
	}
	return nil
}

// instantiate builds a finding from t.
func (t Template) instantiate(id, category string, at time.Time) models.HuntResult {
	return models.HuntResult{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Confidence:  t.Confidence,
		Severity:    models.ParseSeverity(t.Severity),
		Category:    category,
		Tactic:      t.Tactic,
		Timestamp:   at,
		Artifacts:   append([]string(nil), t.Artifacts...),
	}
}

// tacticOrder ranks ATT&CK tactics along the kill chain.
var tacticOrder = map[string]int{
	"initial-access":       1,
	"execution":            2,
	"persistence":          3,
	"privilege-escalation": 4,
	"defense-evasion":      5,
	"credential-access":    6,
	"discovery":            7,
	"lateral-movement":     8,
	"collection":           9,
	"command-and-control":  10,
	"exfiltration":         11,
	"impact":               12,
}

func tacticRank(tactic string) int {
	if r, ok := tacticOrder[strings.ToLower(strings.TrimSpace(tactic))]; ok {
		return r
	}
	return len(tacticOrder) + 1
}

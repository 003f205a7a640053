// Package seed serves the demo catalog and the session-only interactions on
// demo blueprints.
package seed

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/timex"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Provider interface {
	// Catalog returns the demo entries with creation times relative to now.
	Catalog(now time.Time) []models.CatalogEntry
	IsSeed(id string) bool
}

type seedEntry struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Creator     string         `yaml:"creator"`
	Price       uint64         `yaml:"price"`
	Age         timex.Duration `yaml:"age"`
	Theme       seedTheme      `yaml:"theme"`
	Tags        []string       `yaml:"tags"`
}

type seedTheme struct {
	Primary   string `yaml:"primaryColor"`
	Secondary string `yaml:"secondaryColor"`
	Accent    string `yaml:"accentColor"`
}

type YAMLProvider struct {
	entries []seedEntry
	ids     map[string]struct{}
}

// NewYAMLProvider parses a catalog document: a list of entries with id,
// description, creator, price (cents), age, theme and tags.
func NewYAMLProvider(doc []byte) (*YAMLProvider, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	ids := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("seed entry %d has no id", i)
		}
		if _, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("duplicate seed id %q", e.ID)
		}
		if _, err := models.ParsePrincipal(e.Creator); err != nil {
			return nil, fmt.Errorf("seed entry %s: %w", e.ID, err)
		}
		ids[e.ID] = struct{}{}
	}

	return &YAMLProvider{entries: entries, ids: ids}, nil
}

// Default returns the provider over the embedded demo catalog.
func Default() (*YAMLProvider, error) {
	return NewYAMLProvider(defaultCatalog)
}

func (p *YAMLProvider) Catalog(now time.Time) []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, models.CatalogEntry{
			ID:          e.ID,
			Description: e.Description,
			Creator:     models.Principal(e.Creator),
			Price:       e.Price,
			IsFree:      e.Price == 0,
			CreatedAt:   now.Add(-e.Age.Duration),
			Theme:       models.Theme{Primary: e.Theme.Primary, Secondary: e.Theme.Secondary, Accent: e.Theme.Accent},
			Tags:        slices.Clone(e.Tags),
		})
	}
	return out
}

func (p *YAMLProvider) IsSeed(id string) bool {
	_, ok := p.ids[id]
	return ok
}

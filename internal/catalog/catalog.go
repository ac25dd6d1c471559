// Package catalog loads the static source catalog.
// A Catalog is immutable once loaded and safe for concurrent use.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"spectrum-feed/internal/domain/entity"
)

//go:embed sources.yaml
var defaultCatalogYAML []byte

// record is the on-disk form of a catalog entry.
type record struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	Side string  `yaml:"side"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Feed string  `yaml:"feed"`
}

type document struct {
	Sources []record `yaml:"sources"`
}

// Catalog is a read-only set of sources ordered by identifier.
type Catalog struct {
	sources []entity.Source
	byID    map[string]int
}

// New builds a catalog from sources after validating them.
// Source identifiers must be unique.
func New(sources []entity.Source) (*Catalog, error) {
	c := &Catalog{
		sources: make([]entity.Source, 0, len(sources)),
		byID:    make(map[string]int, len(sources)),
	}
	for i := range sources {
		src := sources[i]
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.byID[src.ID]; dup {
			return nil, &entity.ValidationError{Field: "id", Message: fmt.Sprintf("duplicate source id %q", src.ID)}
		}
		c.byID[src.ID] = -1
		c.sources = append(c.sources, src)
	}

	sort.Slice(c.sources, func(i, j int) bool { return c.sources[i].ID < c.sources[j].ID })
	for i, src := range c.sources {
		c.byID[src.ID] = i
	}
	return c, nil
}

// Parse reads a YAML catalog document.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return New(nil)
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	sources := make([]entity.Source, 0, len(doc.Sources))
	for i, rec := range doc.Sources {
		side, err := entity.ParseSide(rec.Side)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, rec.ID, err)
		}
		sources = append(sources, entity.Source{
			ID:      rec.ID,
			Name:    rec.Name,
			Side:    side,
			X:       rec.X,
			Y:       rec.Y,
			FeedURL: rec.Feed,
		})
	}
	return New(sources)
}

// Load reads the catalog at path, or the embedded default catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultCatalogYAML))
}

// Sources returns a copy of all sources ordered by identifier.
func (c *Catalog) Sources() []entity.Source {
	out := make([]entity.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Get returns the source with the given identifier.
func (c *Catalog) Get(id string) (entity.Source, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Source{}, false
	}
	return c.sources[i], true
}

// Len returns the number of sources.
func (c *Catalog) Len() int {
	return len(c.sources)
}

// Bounds returns the bounding box of all source coordinates.
// ok is false for an empty catalog.
func (c *Catalog) Bounds() (min, max entity.Coordinate, ok bool) {
	if len(c.sources) == 0 {
		return entity.Coordinate{}, entity.Coordinate{}, false
	}
	min = c.sources[0].Coordinate()
	max = min
	for _, s := range c.sources[1:] {
		if s.X < min.X {
			min.X = s.X
		}
		if s.Y < min.Y {
			min.Y = s.Y
		}
		if s.X > max.X {
			max.X = s.X
		}
		if s.Y > max.Y {
			max.Y = s.Y
		}
	}
	return min, max, true
}

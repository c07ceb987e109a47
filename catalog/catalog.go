package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the treatment technology a device belongs to.
type Category string

const (
	RF      Category = "RF"
	HIFU    Category = "HIFU"
	Unknown Category = "Unknown"
)

// UnknownCompany is reported for devices the catalog does not know.
const UnknownCompany = "Unknown"

// SentinelRank sorts after every real rank; it marks unmapped devices.
const SentinelRank = 999

// ErrInvalidCatalog is returned when catalog entries break the uniqueness
// or range rules.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Entry is one device of the reference catalog.
type Entry struct {
	DeviceName string   `yaml:"name"`
	Category   Category `yaml:"category"`
	Rank       int      `yaml:"rank"`
	Company    string   `yaml:"company"`
}

// Catalog is an immutable device lookup table. The zero value is an empty
// catalog in which every lookup misses.
type Catalog struct {
	entries map[string]Entry
}

// New validates entries and builds a Catalog from them.
func New(entries []Entry) (*Catalog, error) {
	byName := make(map[string]Entry, len(entries))
	ranks := make(map[Category]map[int]string)

	for _, e := range entries {
		e.DeviceName = strings.TrimSpace(e.DeviceName)
		e.Company = strings.TrimSpace(e.Company)

		if e.DeviceName == "" {
			return nil, fmt.Errorf("%w: entry with empty device name", ErrInvalidCatalog)
		}
		if e.Category != RF && e.Category != HIFU {
			return nil, fmt.Errorf("%w: %s: unsupported category %q", ErrInvalidCatalog, e.DeviceName, e.Category)
		}
		if e.Rank < 1 || e.Rank >= SentinelRank {
			return nil, fmt.Errorf("%w: %s: rank %d out of range", ErrInvalidCatalog, e.DeviceName, e.Rank)
		}
		if _, dup := byName[e.DeviceName]; dup {
			return nil, fmt.Errorf("%w: duplicate device %s", ErrInvalidCatalog, e.DeviceName)
		}
		if ranks[e.Category] == nil {
			ranks[e.Category] = make(map[int]string)
		}
		if other, taken := ranks[e.Category][e.Rank]; taken {
			return nil, fmt.Errorf("%w: %s and %s share %s rank %d",
				ErrInvalidCatalog, other, e.DeviceName, e.Category, e.Rank)
		}
		ranks[e.Category][e.Rank] = e.DeviceName
		byName[e.DeviceName] = e
	}

	return &Catalog{entries: byName}, nil
}

type document struct {
	Devices []Entry `yaml:"devices"`
}

// Load reads a YAML catalog document from path.
//
//	devices:
//	  - name: 울쎄라
//	    category: HIFU
//	    rank: 1
//	    company: 머츠
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	if len(doc.Devices) == 0 {
		return nil, fmt.Errorf("%w: no devices defined", ErrInvalidCatalog)
	}
	return New(doc.Devices)
}

// Lookup returns the entry registered for deviceName. A miss is not an
// error; callers classify the device as Unknown.
func (c *Catalog) Lookup(deviceName string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[deviceName]
	return e, ok
}

// Len returns the number of devices in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns all entries ordered by category (RF first) then rank.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return categoryOrder(out[i].Category) < categoryOrder(out[j].Category)
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Categories lists the real device categories in report order.
func Categories() []Category {
	return []Category{RF, HIFU}
}

func categoryOrder(c Category) int {
	switch c {
	case RF:
		return 0
	case HIFU:
		return 1
	default:
		return 2
	}
}

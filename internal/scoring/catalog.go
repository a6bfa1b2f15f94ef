package scoring

import "github.com/ateneolabs/concordia/internal/models"

// Catalog is the deduplicated, ordered set of specific objectives a run
// scores against. The first occurrence of an objective id wins; later
// entries with the same id are dropped.
type Catalog struct {
	entries []models.CatalogEntry
	index   map[string]int
}

// NewCatalog builds a catalog from entries, deduplicating by objective id.
func NewCatalog(entries []models.CatalogEntry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, ok := c.index[e.ObjectiveID]; ok {
			continue
		}
		c.index[e.ObjectiveID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// CatalogFromRows derives a catalog from the rows' own objective pairs,
// for requests that carry no explicit catalog.
func CatalogFromRows(rows []models.TextRecord) *Catalog {
	entries := make([]models.CatalogEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, models.CatalogEntry{
			ObjectiveID:   rows[i].ObjectiveID,
			ObjectiveText: rows[i].ObjectiveText,
		})
	}
	return NewCatalog(entries)
}

// Len returns the number of distinct objectives.
func (c *Catalog) Len() int { return len(c.entries) }

// Lookup returns the catalog position of an objective id.
func (c *Catalog) Lookup(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Entry returns the entry at position i.
func (c *Catalog) Entry(i int) models.CatalogEntry { return c.entries[i] }

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []models.CatalogEntry { return c.entries }

// Texts returns the objective texts in catalog order.
func (c *Catalog) Texts() []string {
	texts := make([]string, len(c.entries))
	for i, e := range c.entries {
		texts[i] = e.ObjectiveText
	}
	return texts
}

package catalog

import (
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
)

// StaticCatalog serves a fixed, in-process list of indications
type StaticCatalog struct {
	indications []entities.Indication
	byID        map[string]int
}

// NewStaticCatalog creates a catalog over indications. Later entries with a
// duplicate ID are ignored.
func NewStaticCatalog(indications []entities.Indication) *StaticCatalog {
	c := &StaticCatalog{byID: make(map[string]int, len(indications))}
	for _, ind := range indications {
		id := normalizeID(ind.ID)
		if id == "" {
			continue
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		ind.ID = id
		c.byID[id] = len(c.indications)
		c.indications = append(c.indications, ind)
	}
	return c
}

// NewDefaultCatalog returns the built-in indication catalog
func NewDefaultCatalog() providers.IndicationCatalog {
	return NewStaticCatalog(DefaultIndications())
}

// GetIndicationByID returns a copy of the indication with id. Lookup is
// case-insensitive and ignores surrounding whitespace.
func (c *StaticCatalog) GetIndicationByID(id string) (*entities.Indication, bool) {
	idx, ok := c.byID[normalizeID(id)]
	if !ok {
		return nil, false
	}
	ind := cloneIndication(c.indications[idx])
	return &ind, true
}

// GetAllIndications lists every indication in catalog order
func (c *StaticCatalog) GetAllIndications() []entities.Indication {
	out := make([]entities.Indication, len(c.indications))
	for i, ind := range c.indications {
		out[i] = cloneIndication(ind)
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// cloneIndication copies the slices and map so callers cannot alter the catalog.
func cloneIndication(ind entities.Indication) entities.Indication {
	ind.ICD10 = append([]string(nil), ind.ICD10...)
	ind.CPT = append([]string(nil), ind.CPT...)
	ind.HCPCS = append([]string(nil), ind.HCPCS...)
	ind.Specialties = append([]string(nil), ind.Specialties...)
	if ind.ComorbidityFilters != nil {
		filters := make(map[string]float64, len(ind.ComorbidityFilters))
		for k, v := range ind.ComorbidityFilters {
			filters[k] = v
		}
		ind.ComorbidityFilters = filters
	}
	return ind
}

package medicare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zatekoja/physiciansearch/backend/pkg/config"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

// DatasetKind identifies one of the three Medicare physician datasets.
type DatasetKind string

const (
	DatasetProvider  DatasetKind = "provider"
	DatasetService   DatasetKind = "provider_service"
	DatasetGeography DatasetKind = "geography_service"
)

// knownDatasets holds the published dataset identifiers per data year.
var knownDatasets = map[DatasetKind]map[string]string{
	DatasetProvider: {
		"2022": "8889d81e-2ee7-448f-8713-f071038289b5",
	},
	DatasetService: {
		"2022": "92396110-2aed-4d63-a6a2-5d6207d46a29",
	},
	DatasetGeography: {
		"2022": "6fea9d79-0129-4e4c-b1b8-23cd86a4f435",
	},
}

// DatasetTable resolves a dataset kind and data year to a query base URL.
type DatasetTable struct {
	baseURL     string
	defaultYear string
	ids         map[DatasetKind]map[string]string
}

// NewDatasetTable builds the table from configuration. Dataset ID overrides
// apply to the configured data year.
func NewDatasetTable(cfg *config.CMSConfig) *DatasetTable {
	t := &DatasetTable{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		defaultYear: cfg.DataYear,
		ids:         make(map[DatasetKind]map[string]string, len(knownDatasets)),
	}
	for kind, years := range knownDatasets {
		t.ids[kind] = make(map[string]string, len(years)+1)
		for year, id := range years {
			t.ids[kind][year] = id
		}
	}

	overrides := map[DatasetKind]string{
		DatasetProvider:  cfg.ProviderDatasetID,
		DatasetService:   cfg.ServiceDatasetID,
		DatasetGeography: cfg.GeographyDatasetID,
	}
	for kind, id := range overrides {
		if id != "" {
			t.ids[kind][cfg.DataYear] = id
		}
	}
	return t
}

// DefaultYear is the data year used when a search names none.
func (t *DatasetTable) DefaultYear() string {
	return t.defaultYear
}

// Resolve returns the data URL of kind for year and the year actually used.
func (t *DatasetTable) Resolve(kind DatasetKind, year string) (string, string, error) {
	if year == "" {
		year = t.defaultYear
	}
	id, ok := t.ids[kind][year]
	if !ok {
		return "", "", apperrors.NewValidationError(fmt.Sprintf(
			"no %s dataset for year %q (available: %s)", kind, year, strings.Join(t.Years(kind), ", ")))
	}
	return fmt.Sprintf("%s/%s/data", t.baseURL, id), year, nil
}

// Years lists the data years available for kind, oldest first.
func (t *DatasetTable) Years(kind DatasetKind) []string {
	years := make([]string, 0, len(t.ids[kind]))
	for year := range t.ids[kind] {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

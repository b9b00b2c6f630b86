package medicare

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
)

// PhysicianAdapter implements PhysicianRepository on top of the CMS data API
type PhysicianAdapter struct {
	fetcher  cmsdata.Fetcher
	datasets *DatasetTable
}

// NewPhysicianAdapter creates a new physician adapter
func NewPhysicianAdapter(fetcher cmsdata.Fetcher, datasets *DatasetTable) repositories.PhysicianRepository {
	return &PhysicianAdapter{
		fetcher:  fetcher,
		datasets: datasets,
	}
}

// SearchProviders queries the "by Provider" dataset
func (a *PhysicianAdapter) SearchProviders(ctx context.Context, params repositories.ProviderSearchParams) (*entities.SearchResult[entities.Provider], error) {
	baseURL, year, err := a.datasets.Resolve(DatasetProvider, params.Year)
	if err != nil {
		return nil, err
	}

	result, err := a.fetcher.FetchPaginated(ctx, baseURL, ProviderFilters(params), fetchOptions(params.Paging, params.SortBy, params.SortAscending))
	if err != nil {
		return nil, fmt.Errorf("searching providers: %w", err)
	}

	return mapResult(result, year, MapProvider), nil
}

// SearchServices queries the "by Provider and Service" dataset
func (a *PhysicianAdapter) SearchServices(ctx context.Context, params repositories.ServiceSearchParams) (*entities.SearchResult[entities.ProviderService], error) {
	baseURL, year, err := a.datasets.Resolve(DatasetService, params.Year)
	if err != nil {
		return nil, err
	}

	result, err := a.fetcher.FetchPaginated(ctx, baseURL, ServiceFilters(params), fetchOptions(params.Paging, params.SortBy, params.SortAscending))
	if err != nil {
		return nil, fmt.Errorf("searching provider services: %w", err)
	}

	return mapResult(result, year, MapProviderService), nil
}

// SearchGeography queries the "by Geography and Service" dataset
func (a *PhysicianAdapter) SearchGeography(ctx context.Context, params repositories.GeographySearchParams) (*entities.SearchResult[entities.GeographyService], error) {
	baseURL, year, err := a.datasets.Resolve(DatasetGeography, params.Year)
	if err != nil {
		return nil, err
	}

	result, err := a.fetcher.FetchPaginated(ctx, baseURL, GeographyFilters(params), fetchOptions(params.Paging, "", false))
	if err != nil {
		return nil, fmt.Errorf("searching geography services: %w", err)
	}

	return mapResult(result, year, MapGeographyService), nil
}

// ProviderFilters translates provider search params into dataset filters.
// Chronic-condition thresholds are emitted in key order so the query URL
// stays stable.
func ProviderFilters(p repositories.ProviderSearchParams) []cmsdata.Filter {
	filters := []cmsdata.Filter{
		{Field: colNPI, Operator: cmsdata.OpEqual, Value: p.NPI},
		{Field: colLastOrgName, Operator: cmsdata.OpContains, Value: p.Name},
		{Field: colFirstName, Operator: cmsdata.OpContains, Value: p.FirstName},
		{Field: colState, Operator: cmsdata.OpEqual, Value: strings.ToUpper(p.State)},
		{Field: colCity, Operator: cmsdata.OpEqual, Value: p.City},
		{Field: colZip, Operator: cmsdata.OpEqual, Value: p.ZipCode},
		{Field: colSpecialty, Operator: cmsdata.OpContains, Value: p.Specialty},
		{Field: colSpecialty, Operator: cmsdata.OpIn, Value: p.Specialties},
		{Field: colEntityCode, Operator: cmsdata.OpEqual, Value: entityCode(p.EntityType)},
		{Field: colTotBenes, Operator: cmsdata.OpGreaterOrEqual, Value: p.MinBeneficiaries},
		{Field: colBeneRiskScore, Operator: cmsdata.OpGreaterOrEqual, Value: p.MinRiskScore},
	}

	keys := make([]string, 0, len(p.MinChronicConditionPct))
	for key := range p.MinChronicConditionPct {
		if _, ok := entities.ChronicConditionColumns[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		filters = append(filters, cmsdata.Filter{
			Field:    entities.ChronicConditionColumns[key],
			Operator: cmsdata.OpGreaterOrEqual,
			Value:    p.MinChronicConditionPct[key],
		})
	}
	return filters
}

// ServiceFilters translates service search params into dataset filters.
func ServiceFilters(p repositories.ServiceSearchParams) []cmsdata.Filter {
	filters := []cmsdata.Filter{
		{Field: colNPI, Operator: cmsdata.OpEqual, Value: p.NPI},
		{Field: colHCPCSCode, Operator: cmsdata.OpIn, Value: upperAll(p.HCPCSCodes)},
		{Field: colState, Operator: cmsdata.OpEqual, Value: strings.ToUpper(p.State)},
		{Field: colSpecialty, Operator: cmsdata.OpContains, Value: p.Specialty},
		{Field: colPlaceOfService, Operator: cmsdata.OpEqual, Value: strings.ToUpper(p.PlaceOfService)},
	}
	if p.DrugOnly != nil {
		filters = append(filters, cmsdata.Filter{Field: colHCPCSDrugInd, Operator: cmsdata.OpEqual, Value: yesNo(*p.DrugOnly)})
	}
	return filters
}

// GeographyFilters translates geography search params into dataset filters.
func GeographyFilters(p repositories.GeographySearchParams) []cmsdata.Filter {
	filters := []cmsdata.Filter{
		{Field: colGeoLevel, Operator: cmsdata.OpEqual, Value: geographyLevel(p.Level)},
		{Field: colGeoCode, Operator: cmsdata.OpEqual, Value: p.Code},
		{Field: colHCPCSCode, Operator: cmsdata.OpIn, Value: upperAll(p.HCPCSCodes)},
		{Field: colPlaceOfService, Operator: cmsdata.OpEqual, Value: strings.ToUpper(p.PlaceOfService)},
	}
	if p.DrugOnly != nil {
		filters = append(filters, cmsdata.Filter{Field: colHCPCSDrugInd, Operator: cmsdata.OpEqual, Value: yesNo(*p.DrugOnly)})
	}
	return filters
}

func fetchOptions(paging repositories.Paging, sortBy string, ascending bool) cmsdata.FetchOptions {
	opts := cmsdata.FetchOptions{
		PageSize:        paging.Limit,
		Offset:          paging.Offset,
		FetchAllPages:   paging.FetchAll,
		MaxTotalResults: paging.MaxResults,
	}
	if sortBy != "" {
		opts.SortField = sortColumn(sortBy)
		opts.SortDescending = !ascending
	}
	return opts
}

func mapResult[T any](result *cmsdata.FetchResult, year string, mapRow func(cmsdata.RawRow) T) *entities.SearchResult[T] {
	records := make([]T, 0, len(result.Rows))
	for _, row := range result.Rows {
		records = append(records, mapRow(row))
	}
	return &entities.SearchResult[T]{
		Records:       records,
		TotalReturned: len(records),
		PageCount:     result.PageCount,
		HasMore:       result.HasMore,
		DataYear:      year,
	}
}

func entityCode(entityType string) string {
	switch strings.ToLower(strings.TrimSpace(entityType)) {
	case "i", "individual":
		return entityIndividual
	case "o", "organization":
		return entityOrganization
	default:
		return ""
	}
}

func geographyLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "national":
		return entities.GeographyNational
	case "state":
		return entities.GeographyState
	default:
		return level
	}
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func upperAll(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

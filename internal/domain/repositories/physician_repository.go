package repositories

import (
	"context"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
)

// PhysicianRepository defines read access to the Medicare physician datasets
type PhysicianRepository interface {
	// SearchProviders retrieves provider summaries matching params
	SearchProviders(ctx context.Context, params ProviderSearchParams) (*entities.SearchResult[entities.Provider], error)

	// SearchServices retrieves provider-by-service rows matching params
	SearchServices(ctx context.Context, params ServiceSearchParams) (*entities.SearchResult[entities.ProviderService], error)

	// SearchGeography retrieves geography-by-service rows matching params
	SearchGeography(ctx context.Context, params GeographySearchParams) (*entities.SearchResult[entities.GeographyService], error)
}

// Paging controls how many rows a search returns
type Paging struct {
	Limit      int
	Offset     int
	FetchAll   bool
	MaxResults int
}

// ProviderSearchParams defines filters for the provider dataset
type ProviderSearchParams struct {
	NPI         string
	Name        string
	FirstName   string
	State       string
	City        string
	ZipCode     string
	Specialty   string
	Specialties []string
	EntityType  string

	MinBeneficiaries *float64
	MinRiskScore     *float64

	// MinChronicConditionPct maps chronic-condition keys to minimum
	// percentages; unknown keys are ignored.
	MinChronicConditionPct map[string]float64

	SortBy        string
	SortAscending bool
	Year          string
	Paging
}

// ServiceSearchParams defines filters for the provider-by-service dataset
type ServiceSearchParams struct {
	NPI            string
	HCPCSCodes     []string
	State          string
	Specialty      string
	DrugOnly       *bool
	PlaceOfService string

	SortBy        string
	SortAscending bool
	Year          string
	Paging
}

// GeographySearchParams defines filters for the geography-by-service dataset
type GeographySearchParams struct {
	Level          string
	Code           string
	HCPCSCodes     []string
	DrugOnly       *bool
	PlaceOfService string

	Year string
	Paging
}

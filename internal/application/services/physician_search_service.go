package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

// maxResultsCeiling bounds how many rows one search may accumulate.
const maxResultsCeiling = 5000

var (
	npiPattern   = regexp.MustCompile(`^\d{10}$`)
	statePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// PhysicianSearchService handles dataset searches for providers, their
// services, and geographic aggregates
type PhysicianSearchService struct {
	repo repositories.PhysicianRepository
}

// NewPhysicianSearchService creates a new physician search service
func NewPhysicianSearchService(repo repositories.PhysicianRepository) *PhysicianSearchService {
	return &PhysicianSearchService{repo: repo}
}

// SearchProviders searches the provider summary dataset
func (s *PhysicianSearchService) SearchProviders(ctx context.Context, params repositories.ProviderSearchParams) (*entities.SearchResult[entities.Provider], error) {
	if err := validateNPI(params.NPI); err != nil {
		return nil, err
	}
	if err := validateState(params.State); err != nil {
		return nil, err
	}
	if err := validatePaging(params.Paging); err != nil {
		return nil, err
	}
	return s.repo.SearchProviders(ctx, params)
}

// SearchProviderServices searches service lines, usually for one provider
func (s *PhysicianSearchService) SearchProviderServices(ctx context.Context, params repositories.ServiceSearchParams) (*entities.SearchResult[entities.ProviderService], error) {
	if err := validateNPI(params.NPI); err != nil {
		return nil, err
	}
	if err := validateState(params.State); err != nil {
		return nil, err
	}
	if err := validatePaging(params.Paging); err != nil {
		return nil, err
	}
	return s.repo.SearchServices(ctx, params)
}

// SearchGeography searches national and state aggregates per service
func (s *PhysicianSearchService) SearchGeography(ctx context.Context, params repositories.GeographySearchParams) (*entities.SearchResult[entities.GeographyService], error) {
	switch strings.ToLower(params.Level) {
	case "", "national", "state":
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("geography level must be national or state, got %q", params.Level))
	}
	if err := validatePaging(params.Paging); err != nil {
		return nil, err
	}
	return s.repo.SearchGeography(ctx, params)
}

func validateNPI(npi string) error {
	if npi != "" && !npiPattern.MatchString(npi) {
		return apperrors.NewValidationError(fmt.Sprintf("npi must be 10 digits, got %q", npi))
	}
	return nil
}

func validateState(state string) error {
	if state != "" && !statePattern.MatchString(state) {
		return apperrors.NewValidationError(fmt.Sprintf("state must be a two-letter abbreviation, got %q", state))
	}
	return nil
}

func validatePaging(p repositories.Paging) error {
	if p.Limit < 0 || p.Offset < 0 || p.MaxResults < 0 {
		return apperrors.NewValidationError("limit, offset and max_results must not be negative")
	}
	if p.MaxResults > maxResultsCeiling {
		return apperrors.NewValidationError(fmt.Sprintf("max_results must not exceed %d", maxResultsCeiling))
	}
	return nil
}

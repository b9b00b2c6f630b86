package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

// PhysicianSearchService defines the handler dependency for dataset searches.
type PhysicianSearchService interface {
	SearchProviders(ctx context.Context, params repositories.ProviderSearchParams) (*entities.SearchResult[entities.Provider], error)
	SearchProviderServices(ctx context.Context, params repositories.ServiceSearchParams) (*entities.SearchResult[entities.ProviderService], error)
	SearchGeography(ctx context.Context, params repositories.GeographySearchParams) (*entities.SearchResult[entities.GeographyService], error)
}

// PhysicianHandler handles provider, service and geography searches
type PhysicianHandler struct {
	service PhysicianSearchService
}

// NewPhysicianHandler creates a new physician handler
func NewPhysicianHandler(service PhysicianSearchService) *PhysicianHandler {
	return &PhysicianHandler{service: service}
}

// SearchProviders handles GET /api/providers
func (h *PhysicianHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())
	params := repositories.ProviderSearchParams{
		NPI:              q.str("npi"),
		Name:             q.str("name"),
		FirstName:        q.str("first_name"),
		State:            q.str("state"),
		City:             q.str("city"),
		ZipCode:          q.str("zip"),
		Specialty:        q.str("specialty"),
		EntityType:       q.str("entity_type"),
		MinBeneficiaries: q.number("min_beneficiaries"),
		MinRiskScore:     q.number("min_risk_score"),
		SortBy:           q.str("sort"),
		SortAscending:    q.flag("asc"),
		Year:             q.str("year"),
		Paging:           q.paging(),
	}
	if q.err != nil {
		respondWithAppError(r.Context(), w, q.err)
		return
	}

	result, err := h.service.SearchProviders(r.Context(), params)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetProvider handles GET /api/providers/{npi}
func (h *PhysicianHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	npi := r.PathValue("npi")
	result, err := h.service.SearchProviders(r.Context(), repositories.ProviderSearchParams{
		NPI:    npi,
		Year:   r.URL.Query().Get("year"),
		Paging: repositories.Paging{Limit: 1},
	})
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	if len(result.Records) == 0 {
		respondWithAppError(r.Context(), w, apperrors.NewNotFoundError("provider "+npi+" not found"))
		return
	}

	respondWithJSON(w, http.StatusOK, result.Records[0])
}

// GetProviderServices handles GET /api/providers/{npi}/services
func (h *PhysicianHandler) GetProviderServices(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())
	params := repositories.ServiceSearchParams{
		NPI:            r.PathValue("npi"),
		HCPCSCodes:     q.list("hcpcs"),
		DrugOnly:       q.optionalFlag("drug"),
		PlaceOfService: q.str("place_of_service"),
		SortBy:         q.str("sort"),
		SortAscending:  q.flag("asc"),
		Year:           q.str("year"),
		Paging:         q.paging(),
	}
	h.searchServices(w, r, q, params)
}

// SearchServices handles GET /api/services
func (h *PhysicianHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())
	params := repositories.ServiceSearchParams{
		NPI:            q.str("npi"),
		HCPCSCodes:     q.list("hcpcs"),
		State:          q.str("state"),
		Specialty:      q.str("specialty"),
		DrugOnly:       q.optionalFlag("drug"),
		PlaceOfService: q.str("place_of_service"),
		SortBy:         q.str("sort"),
		SortAscending:  q.flag("asc"),
		Year:           q.str("year"),
		Paging:         q.paging(),
	}
	h.searchServices(w, r, q, params)
}

func (h *PhysicianHandler) searchServices(w http.ResponseWriter, r *http.Request, q *queryReader, params repositories.ServiceSearchParams) {
	if q.err != nil {
		respondWithAppError(r.Context(), w, q.err)
		return
	}

	result, err := h.service.SearchProviderServices(r.Context(), params)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SearchGeography handles GET /api/geography
func (h *PhysicianHandler) SearchGeography(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())
	params := repositories.GeographySearchParams{
		Level:          q.str("level"),
		Code:           q.str("code"),
		HCPCSCodes:     q.list("hcpcs"),
		DrugOnly:       q.optionalFlag("drug"),
		PlaceOfService: q.str("place_of_service"),
		Year:           q.str("year"),
		Paging:         q.paging(),
	}
	if q.err != nil {
		respondWithAppError(r.Context(), w, q.err)
		return
	}

	result, err := h.service.SearchGeography(r.Context(), params)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/physiciansearch/backend/internal/application/services"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
)

// IndicationSearchService defines the handler dependency for indication searches.
type IndicationSearchService interface {
	ListIndications() []entities.Indication
	SearchByIndication(ctx context.Context, indicationID string, params services.IndicationSearchParams) (*entities.IndicationSearchResult, error)
}

// IndicationHandler handles indication catalog and ranking requests
type IndicationHandler struct {
	service IndicationSearchService
}

// NewIndicationHandler creates a new indication handler
func NewIndicationHandler(service IndicationSearchService) *IndicationHandler {
	return &IndicationHandler{service: service}
}

// ListIndications handles GET /api/indications
func (h *IndicationHandler) ListIndications(w http.ResponseWriter, r *http.Request) {
	indications := h.service.ListIndications()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"indications": indications,
		"count":       len(indications),
	})
}

// SearchPhysicians handles GET /api/indications/{id}/physicians
func (h *IndicationHandler) SearchPhysicians(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())
	params := services.IndicationSearchParams{
		State:      q.str("state"),
		City:       q.str("city"),
		ZipCode:    q.str("zip"),
		MaxResults: q.integer("max_results"),
		Year:       q.str("year"),
	}
	if q.err != nil {
		respondWithAppError(r.Context(), w, q.err)
		return
	}

	result, err := h.service.SearchByIndication(r.Context(), r.PathValue("id"), params)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

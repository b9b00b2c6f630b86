package providers

import "github.com/zatekoja/physiciansearch/backend/internal/domain/entities"

// IndicationCatalog resolves clinical indications to their code sets
type IndicationCatalog interface {
	// GetIndicationByID returns the indication with id, or false
	GetIndicationByID(id string) (*entities.Indication, bool)

	// GetAllIndications lists every indication in catalog order
	GetAllIndications() []entities.Indication
}

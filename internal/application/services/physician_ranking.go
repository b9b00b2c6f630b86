package services

import (
	"sort"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
)

// Relevance weights. Indication-specific services dominate, then
// indication-specific beneficiaries, then overall practice size.
const (
	weightIndicationServices      = 10.0
	weightIndicationBeneficiaries = 1.0
	weightTotalBeneficiaries      = 0.1
)

// RelevanceScore scores a physician's fit for an indication.
func RelevanceScore(p *entities.EnrichedPhysician) float64 {
	return p.IndicationServices*weightIndicationServices +
		p.IndicationBeneficiaries*weightIndicationBeneficiaries +
		entities.Float(p.TotalBeneficiaries)*weightTotalBeneficiaries
}

// RankPhysicians scores every physician and orders them by descending score.
// Ties keep their input order.
func RankPhysicians(physicians []entities.EnrichedPhysician) []entities.EnrichedPhysician {
	for i := range physicians {
		physicians[i].RelevanceScore = RelevanceScore(&physicians[i])
	}
	sort.SliceStable(physicians, func(i, j int) bool {
		return physicians[i].RelevanceScore > physicians[j].RelevanceScore
	})
	return physicians
}

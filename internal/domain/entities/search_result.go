package entities

// SearchResult is one page-bounded answer from a dataset search.
type SearchResult[T any] struct {
	Records       []T    `json:"records"`
	TotalReturned int    `json:"total_returned"`
	PageCount     int    `json:"page_count"`
	HasMore       bool   `json:"has_more"`
	DataYear      string `json:"data_year"`
}

// EnrichmentStatus tells how a physician's indication volume was obtained.
type EnrichmentStatus string

const (
	EnrichmentMatched    EnrichmentStatus = "matched"
	EnrichmentNoMatch    EnrichmentStatus = "no_match"
	EnrichmentNotChecked EnrichmentStatus = "not_checked"
	EnrichmentFailed     EnrichmentStatus = "failed"
)

// EnrichedPhysician is a provider annotated with its billing volume for an
// indication's codes.
type EnrichedPhysician struct {
	Provider

	IndicationServices      float64          `json:"indication_services"`
	IndicationBeneficiaries float64          `json:"indication_beneficiaries"`
	RelevantCodes           []string         `json:"relevant_codes"`
	RelevanceScore          float64          `json:"relevance_score"`
	EnrichmentStatus        EnrichmentStatus `json:"enrichment_status"`
}

// IndicationSearchResult is the ranked answer to an indication search.
type IndicationSearchResult struct {
	Indication       Indication          `json:"indication"`
	Physicians       []EnrichedPhysician `json:"physicians"`
	TotalReturned    int                 `json:"total_returned"`
	PageCount        int                 `json:"page_count"`
	HasMore          bool                `json:"has_more"`
	DataYear         string              `json:"data_year"`
	LookupsAttempted int                 `json:"lookups_attempted"`
	LookupsFailed    int                 `json:"lookups_failed"`
	Limitations      []string            `json:"limitations"`
}

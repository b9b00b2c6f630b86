package entities

// Indication is a clinical indication and the codes, specialties and
// comorbidity thresholds that identify physicians treating it.
type Indication struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ICD10       []string `json:"icd10"`
	CPT         []string `json:"cpt"`
	HCPCS       []string `json:"hcpcs"`
	Specialties []string `json:"specialties"`

	// ComorbidityFilters maps a chronic-condition key to the minimum
	// percentage of a provider's beneficiaries having that condition.
	ComorbidityFilters map[string]float64 `json:"comorbidity_filters,omitempty"`
}

// RelevantCodes returns the CPT codes followed by the HCPCS codes, without
// duplicates, in catalog order.
func (i *Indication) RelevantCodes() []string {
	seen := make(map[string]struct{}, len(i.CPT)+len(i.HCPCS))
	codes := make([]string, 0, len(i.CPT)+len(i.HCPCS))
	for _, list := range [][]string{i.CPT, i.HCPCS} {
		for _, code := range list {
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes
}

package entities

// Provider is one rendering provider from the Medicare Physician & Other
// Practitioners "by Provider" dataset. Numeric fields are nil when the source
// suppressed or omitted the value.
type Provider struct {
	NPI                   string  `json:"npi"`
	Name                  string  `json:"name"`
	LastOrgName           string  `json:"last_org_name"`
	FirstName             string  `json:"first_name,omitempty"`
	MiddleInit            string  `json:"middle_initial,omitempty"`
	Credentials           string  `json:"credentials,omitempty"`
	Gender                string  `json:"gender,omitempty"`
	EntityCode            string  `json:"entity_code"`
	EntityType            string  `json:"entity_type"`
	Specialty             string  `json:"specialty"`
	Address               Address `json:"address"`
	RUCA                  string  `json:"ruca,omitempty"`
	MedicareParticipating bool    `json:"medicare_participating"`

	TotalHCPCSCodes       *float64 `json:"total_hcpcs_codes"`
	TotalBeneficiaries    *float64 `json:"total_beneficiaries"`
	TotalServices         *float64 `json:"total_services"`
	TotalSubmittedCharges *float64 `json:"total_submitted_charges"`
	TotalAllowedAmount    *float64 `json:"total_allowed_amount"`
	TotalPaymentAmount    *float64 `json:"total_payment_amount"`

	AverageBeneficiaryAge *float64 `json:"average_beneficiary_age"`
	RiskScore             *float64 `json:"risk_score"`

	// ChronicConditions maps condition keys (see ChronicConditionColumns) to
	// the percentage of the provider's beneficiaries with that condition.
	// Suppressed percentages are absent from the map.
	ChronicConditions map[string]float64 `json:"chronic_conditions,omitempty"`
}

// Address represents a provider practice location
type Address struct {
	Street  string `json:"street"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// ChronicConditionColumns maps a comorbidity key used by the indication
// catalog to the "by Provider" dataset column holding its percentage.
var ChronicConditionColumns = map[string]string{
	"afib":           "Bene_CC_PH_Afib_V2_Pct",
	"arthritis":      "Bene_CC_PH_Arthritis_V2_Pct",
	"asthma":         "Bene_CC_PH_Asthma_V2_Pct",
	"cancer":         "Bene_CC_PH_Cancer6_V2_Pct",
	"ckd":            "Bene_CC_PH_CKD_V2_Pct",
	"copd":           "Bene_CC_PH_COPD_V2_Pct",
	"dementia":       "Bene_CC_BH_Alz_NonAlzdem_V2_Pct",
	"depression":     "Bene_CC_BH_Depress_V1_Pct",
	"diabetes":       "Bene_CC_PH_Diabetes_V2_Pct",
	"heart_failure":  "Bene_CC_PH_HF_NonIHD_V2_Pct",
	"hyperlipidemia": "Bene_CC_PH_Hyperlipidemia_V2_Pct",
	"hypertension":   "Bene_CC_PH_Hypertension_V2_Pct",
	"ischemic_heart": "Bene_CC_PH_IschemicHeart_V2_Pct",
	"osteoporosis":   "Bene_CC_PH_Osteoporosis_V2_Pct",
	"stroke":         "Bene_CC_PH_Stroke_TIA_V2_Pct",
}

// Float returns the value of p, or 0 when it is nil.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

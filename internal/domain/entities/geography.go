package entities

// GeographyService aggregates one HCPCS code and place of service over a
// nation or a state, from the "by Geography and Service" dataset.
type GeographyService struct {
	Level              string `json:"level"`
	Code               string `json:"code,omitempty"`
	Description        string `json:"description"`
	HCPCSCode          string `json:"hcpcs_code"`
	HCPCSDescription   string `json:"hcpcs_description"`
	IsDrug             bool   `json:"is_drug"`
	PlaceOfServiceCode string `json:"place_of_service_code"`
	PlaceOfService     string `json:"place_of_service"`

	TotalProviders         *float64 `json:"total_providers"`
	Beneficiaries          *float64 `json:"beneficiaries"`
	Services               *float64 `json:"services"`
	BeneficiaryDayServices *float64 `json:"beneficiary_day_services"`
	AvgSubmittedCharge     *float64 `json:"avg_submitted_charge"`
	AvgAllowedAmount       *float64 `json:"avg_allowed_amount"`
	AvgPaymentAmount       *float64 `json:"avg_payment_amount"`
	AvgStandardizedAmount  *float64 `json:"avg_standardized_amount"`
}

// Geography levels accepted by the geography search.
const (
	GeographyNational = "National"
	GeographyState    = "State"
)

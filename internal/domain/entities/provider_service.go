package entities

// ProviderService is one provider's billing for one HCPCS code and place of
// service, from the "by Provider and Service" dataset.
type ProviderService struct {
	NPI                string `json:"npi"`
	ProviderName       string `json:"provider_name"`
	Specialty          string `json:"specialty"`
	State              string `json:"state"`
	HCPCSCode          string `json:"hcpcs_code"`
	HCPCSDescription   string `json:"hcpcs_description"`
	IsDrug             bool   `json:"is_drug"`
	PlaceOfServiceCode string `json:"place_of_service_code"`
	PlaceOfService     string `json:"place_of_service"`

	Beneficiaries          *float64 `json:"beneficiaries"`
	Services               *float64 `json:"services"`
	BeneficiaryDayServices *float64 `json:"beneficiary_day_services"`
	AvgSubmittedCharge     *float64 `json:"avg_submitted_charge"`
	AvgAllowedAmount       *float64 `json:"avg_allowed_amount"`
	AvgPaymentAmount       *float64 `json:"avg_payment_amount"`
	AvgStandardizedAmount  *float64 `json:"avg_standardized_amount"`
}

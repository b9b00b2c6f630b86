package medicare

import (
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
)

// Entity type codes used by the provider datasets.
const (
	entityIndividual   = "I"
	entityOrganization = "O"
)

// MapProvider converts a "by Provider" row into a Provider.
func MapProvider(row cmsdata.RawRow) entities.Provider {
	p := entities.Provider{
		NPI:         row.String(colNPI),
		LastOrgName: row.String(colLastOrgName),
		FirstName:   row.String(colFirstName),
		MiddleInit:  row.String(colMiddleInit),
		Credentials: row.String(colCredentials),
		Gender:      row.String(colGender),
		EntityCode:  strings.ToUpper(row.String(colEntityCode)),
		Specialty:   row.String(colSpecialty),
		Address: entities.Address{
			Street:  row.String(colStreet1),
			Street2: row.String(colStreet2),
			City:    row.String(colCity),
			State:   row.String(colState),
			ZipCode: row.String(colZip),
			Country: row.String(colCountry),
		},
		RUCA:                  row.String(colRUCA),
		MedicareParticipating: yesFlag(row.String(colParticipates)),

		TotalHCPCSCodes:       row.Number(colTotHCPCS),
		TotalBeneficiaries:    row.Number(colTotBenes),
		TotalServices:         row.Number(colTotServices),
		TotalSubmittedCharges: row.Number(colTotSubmitted),
		TotalAllowedAmount:    row.Number(colTotAllowed),
		TotalPaymentAmount:    row.Number(colTotPayment),
		AverageBeneficiaryAge: row.Number(colBeneAvgAge),
		RiskScore:             row.Number(colBeneRiskScore),
	}
	p.EntityType = EntityTypeLabel(p.EntityCode)
	p.Name = DisplayName(p.EntityCode, p.FirstName, p.MiddleInit, p.LastOrgName)

	for key, column := range entities.ChronicConditionColumns {
		if pct := row.Number(column); pct != nil {
			if p.ChronicConditions == nil {
				p.ChronicConditions = make(map[string]float64)
			}
			p.ChronicConditions[key] = *pct
		}
	}
	return p
}

// DisplayName renders "First M. Last" for individuals and the organization
// name for organizations.
func DisplayName(entityCode, first, middle, lastOrOrg string) string {
	if entityCode == entityOrganization {
		return lastOrOrg
	}
	parts := make([]string, 0, 3)
	if first != "" {
		parts = append(parts, first)
	}
	if middle != "" {
		parts = append(parts, strings.TrimSuffix(middle, ".")+".")
	}
	if lastOrOrg != "" {
		parts = append(parts, lastOrOrg)
	}
	return strings.Join(parts, " ")
}

// EntityTypeLabel turns an entity code into a readable label.
func EntityTypeLabel(code string) string {
	switch strings.ToUpper(code) {
	case entityIndividual:
		return "Individual"
	case entityOrganization:
		return "Organization"
	default:
		return code
	}
}

func yesFlag(v string) bool {
	return strings.EqualFold(v, "Y")
}

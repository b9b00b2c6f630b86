package medicare

import (
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
)

// MapProviderService converts a "by Provider and Service" row.
func MapProviderService(row cmsdata.RawRow) entities.ProviderService {
	pos := strings.ToUpper(row.String(colPlaceOfService))
	return entities.ProviderService{
		NPI: row.String(colNPI),
		ProviderName: DisplayName(
			strings.ToUpper(row.String(colEntityCode)),
			row.String(colFirstName),
			row.String(colMiddleInit),
			row.String(colLastOrgName),
		),
		Specialty:          row.String(colSpecialty),
		State:              row.String(colState),
		HCPCSCode:          row.String(colHCPCSCode),
		HCPCSDescription:   row.String(colHCPCSDesc),
		IsDrug:             yesFlag(row.String(colHCPCSDrugInd)),
		PlaceOfServiceCode: pos,
		PlaceOfService:     PlaceOfServiceLabel(pos),

		Beneficiaries:          row.Number(colTotBenes),
		Services:               row.Number(colTotServices),
		BeneficiaryDayServices: row.Number(colBeneDayService),
		AvgSubmittedCharge:     row.Number(colAvgSubmitted),
		AvgAllowedAmount:       row.Number(colAvgAllowed),
		AvgPaymentAmount:       row.Number(colAvgPayment),
		AvgStandardizedAmount:  row.Number(colAvgStandard),
	}
}

// PlaceOfServiceLabel turns a place-of-service code into a readable label.
func PlaceOfServiceLabel(code string) string {
	switch strings.ToUpper(code) {
	case "F":
		return "Facility"
	case "O":
		return "Office"
	default:
		return code
	}
}

package medicare

import (
	"strings"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
)

// MapGeographyService converts a "by Geography and Service" row.
func MapGeographyService(row cmsdata.RawRow) entities.GeographyService {
	pos := strings.ToUpper(row.String(colPlaceOfService))
	return entities.GeographyService{
		Level:              row.String(colGeoLevel),
		Code:               row.String(colGeoCode),
		Description:        row.String(colGeoDesc),
		HCPCSCode:          row.String(colHCPCSCode),
		HCPCSDescription:   row.String(colHCPCSDesc),
		IsDrug:             yesFlag(row.String(colHCPCSDrugInd)),
		PlaceOfServiceCode: pos,
		PlaceOfService:     PlaceOfServiceLabel(pos),

		TotalProviders:         row.Number(colTotRndrngPrvdrs),
		Beneficiaries:          row.Number(colTotBenes),
		Services:               row.Number(colTotServices),
		BeneficiaryDayServices: row.Number(colBeneDayService),
		AvgSubmittedCharge:     row.Number(colAvgSubmitted),
		AvgAllowedAmount:       row.Number(colAvgAllowed),
		AvgPaymentAmount:       row.Number(colAvgPayment),
		AvgStandardizedAmount:  row.Number(colAvgStandard),
	}
}

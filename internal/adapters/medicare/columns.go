package medicare

// Published column names of the Medicare Physician & Other Practitioners
// datasets. Rows may also carry the all-lowercase spelling of each name.
const (
	colNPI          = "Rndrng_NPI"
	colLastOrgName  = "Rndrng_Prvdr_Last_Org_Name"
	colFirstName    = "Rndrng_Prvdr_First_Name"
	colMiddleInit   = "Rndrng_Prvdr_MI"
	colCredentials  = "Rndrng_Prvdr_Crdntls"
	colGender       = "Rndrng_Prvdr_Gndr"
	colEntityCode   = "Rndrng_Prvdr_Ent_Cd"
	colStreet1      = "Rndrng_Prvdr_St1"
	colStreet2      = "Rndrng_Prvdr_St2"
	colCity         = "Rndrng_Prvdr_City"
	colState        = "Rndrng_Prvdr_State_Abrvtn"
	colZip          = "Rndrng_Prvdr_Zip5"
	colRUCA         = "Rndrng_Prvdr_RUCA"
	colCountry      = "Rndrng_Prvdr_Cntry"
	colSpecialty    = "Rndrng_Prvdr_Type"
	colParticipates = "Rndrng_Prvdr_Mdcr_Prtcptg_Ind"

	colTotHCPCS       = "Tot_HCPCS_Cds"
	colTotBenes       = "Tot_Benes"
	colTotServices    = "Tot_Srvcs"
	colTotSubmitted   = "Tot_Sbmtd_Chrg"
	colTotAllowed     = "Tot_Mdcr_Alowd_Amt"
	colTotPayment     = "Tot_Mdcr_Pymt_Amt"
	colBeneAvgAge     = "Bene_Avg_Age"
	colBeneRiskScore  = "Bene_Avg_Risk_Scre"
	colBeneDayService = "Tot_Bene_Day_Srvcs"

	colHCPCSCode      = "HCPCS_Cd"
	colHCPCSDesc      = "HCPCS_Desc"
	colHCPCSDrugInd   = "HCPCS_Drug_Ind"
	colPlaceOfService = "Place_Of_Srvc"
	colAvgSubmitted   = "Avg_Sbmtd_Chrg"
	colAvgAllowed     = "Avg_Mdcr_Alowd_Amt"
	colAvgPayment     = "Avg_Mdcr_Pymt_Amt"
	colAvgStandard    = "Avg_Mdcr_Stdzd_Amt"

	colGeoLevel        = "Rndrng_Prvdr_Geo_Lvl"
	colGeoCode         = "Rndrng_Prvdr_Geo_Cd"
	colGeoDesc         = "Rndrng_Prvdr_Geo_Desc"
	colTotRndrngPrvdrs = "Tot_Rndrng_Prvdrs"
)

// sortAliases lets callers sort by a short name instead of a column name.
var sortAliases = map[string]string{
	"beneficiaries": colTotBenes,
	"services":      colTotServices,
	"payment":       colTotPayment,
	"allowed":       colTotAllowed,
	"charges":       colTotSubmitted,
	"risk":          colBeneRiskScore,
	"name":          colLastOrgName,
}

func sortColumn(sortBy string) string {
	if col, ok := sortAliases[sortBy]; ok {
		return col
	}
	return sortBy
}

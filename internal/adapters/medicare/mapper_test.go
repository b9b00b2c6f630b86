package medicare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
)

const providerRowJSON = `{
	"Rndrng_NPI": "1003000126",
	"Rndrng_Prvdr_Last_Org_Name": "Enkeshafi",
	"Rndrng_Prvdr_First_Name": "Ardalan",
	"Rndrng_Prvdr_MI": "",
	"Rndrng_Prvdr_Crdntls": "M.D.",
	"Rndrng_Prvdr_Ent_Cd": "I",
	"Rndrng_Prvdr_St1": "6410 Rockledge Dr Ste 304",
	"Rndrng_Prvdr_City": "Bethesda",
	"Rndrng_Prvdr_State_Abrvtn": "MD",
	"Rndrng_Prvdr_Zip5": "20817",
	"Rndrng_Prvdr_RUCA": "1",
	"Rndrng_Prvdr_Cntry": "US",
	"Rndrng_Prvdr_Type": "Internal Medicine",
	"Rndrng_Prvdr_Mdcr_Prtcptg_Ind": "Y",
	"Tot_HCPCS_Cds": "26",
	"Tot_Benes": "277",
	"Tot_Srvcs": "567",
	"Tot_Sbmtd_Chrg": "1,137,350",
	"Tot_Mdcr_Alowd_Amt": "130458.53",
	"Tot_Mdcr_Pymt_Amt": "101997.8",
	"Bene_Avg_Age": "",
	"Bene_Avg_Risk_Scre": "2.1913",
	"Bene_CC_PH_CKD_V2_Pct": "41",
	"Bene_CC_PH_Diabetes_V2_Pct": "*"
}`

func decodeRow(t *testing.T, raw string) cmsdata.RawRow {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var row cmsdata.RawRow
	require.NoError(t, dec.Decode(&row))
	return row
}

func lowercaseKeys(row cmsdata.RawRow) cmsdata.RawRow {
	out := make(cmsdata.RawRow, len(row))
	for k, v := range row {
		out[strings.ToLower(k)] = v
	}
	return out
}

func TestMapProvider(t *testing.T) {
	p := MapProvider(decodeRow(t, providerRowJSON))

	assert.Equal(t, "1003000126", p.NPI)
	assert.Equal(t, "Ardalan Enkeshafi", p.Name)
	assert.Equal(t, "Individual", p.EntityType)
	assert.Equal(t, "Internal Medicine", p.Specialty)
	assert.Equal(t, "MD", p.Address.State)
	assert.True(t, p.MedicareParticipating)

	require.NotNil(t, p.TotalBeneficiaries)
	assert.Equal(t, 277.0, *p.TotalBeneficiaries)
	require.NotNil(t, p.TotalSubmittedCharges)
	assert.Equal(t, 1137350.0, *p.TotalSubmittedCharges)
	assert.Nil(t, p.AverageBeneficiaryAge, "empty value must not become zero")

	assert.Equal(t, 41.0, p.ChronicConditions["ckd"])
	_, hasDiabetes := p.ChronicConditions["diabetes"]
	assert.False(t, hasDiabetes, "suppressed percentage must be absent")
}

func TestMapProvider_LowercaseKeysAreEquivalent(t *testing.T) {
	row := decodeRow(t, providerRowJSON)
	assert.Equal(t, MapProvider(row), MapProvider(lowercaseKeys(row)))
}

func TestMapProvider_Organization(t *testing.T) {
	p := MapProvider(cmsdata.RawRow{
		"rndrng_npi":                 "1234567893",
		"rndrng_prvdr_last_org_name": "Acme Dialysis LLC",
		"rndrng_prvdr_ent_cd":        "O",
		"tot_benes":                  json.Number("1200"),
	})

	assert.Equal(t, "Acme Dialysis LLC", p.Name)
	assert.Equal(t, "Organization", p.EntityType)
	require.NotNil(t, p.TotalBeneficiaries)
	assert.Equal(t, 1200.0, *p.TotalBeneficiaries)
	assert.Nil(t, p.ChronicConditions)
}

func TestMapProviderService_LowercaseKeysAreEquivalent(t *testing.T) {
	row := cmsdata.RawRow{
		"Rndrng_NPI":                 "1003000126",
		"Rndrng_Prvdr_First_Name":    "Ardalan",
		"Rndrng_Prvdr_MI":            "K",
		"Rndrng_Prvdr_Last_Org_Name": "Enkeshafi",
		"Rndrng_Prvdr_Ent_Cd":        "I",
		"HCPCS_Cd":                   "J0881",
		"HCPCS_Desc":                 "Injection, darbepoetin alfa",
		"HCPCS_Drug_Ind":             "Y",
		"Place_Of_Srvc":              "O",
		"Tot_Benes":                  "14",
		"Tot_Srvcs":                  "88.5",
		"Avg_Mdcr_Pymt_Amt":          "3.21",
	}

	svc := MapProviderService(row)
	assert.Equal(t, svc, MapProviderService(lowercaseKeys(row)))

	assert.Equal(t, "Ardalan K. Enkeshafi", svc.ProviderName)
	assert.True(t, svc.IsDrug)
	assert.Equal(t, "Office", svc.PlaceOfService)
	require.NotNil(t, svc.Services)
	assert.Equal(t, 88.5, *svc.Services)
	assert.Nil(t, svc.AvgStandardizedAmount)
}

func TestMapGeographyService_LowercaseKeysAreEquivalent(t *testing.T) {
	row := cmsdata.RawRow{
		"Rndrng_Prvdr_Geo_Lvl":  "State",
		"Rndrng_Prvdr_Geo_Cd":   "24",
		"Rndrng_Prvdr_Geo_Desc": "Maryland",
		"HCPCS_Cd":              "99213",
		"HCPCS_Drug_Ind":        "N",
		"Place_Of_Srvc":         "F",
		"Tot_Rndrng_Prvdrs":     "5,012",
		"Tot_Benes":             "#",
	}

	geo := MapGeographyService(row)
	assert.Equal(t, geo, MapGeographyService(lowercaseKeys(row)))

	assert.Equal(t, "Maryland", geo.Description)
	assert.False(t, geo.IsDrug)
	assert.Equal(t, "Facility", geo.PlaceOfService)
	require.NotNil(t, geo.TotalProviders)
	assert.Equal(t, 5012.0, *geo.TotalProviders)
	assert.Nil(t, geo.Beneficiaries)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Q. Doe", DisplayName("I", "Jane", "Q", "Doe"))
	assert.Equal(t, "Jane Q. Doe", DisplayName("I", "Jane", "Q.", "Doe"))
	assert.Equal(t, "Doe", DisplayName("", "", "", "Doe"))
	assert.Equal(t, "General Hospital", DisplayName("O", "ignored", "", "General Hospital"))
}

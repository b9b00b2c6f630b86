package medicare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/repositories"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
	"github.com/zatekoja/physiciansearch/backend/pkg/config"
	apperrors "github.com/zatekoja/physiciansearch/backend/pkg/errors"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchPaginated(ctx context.Context, baseURL string, filters []cmsdata.Filter, opts cmsdata.FetchOptions) (*cmsdata.FetchResult, error) {
	args := m.Called(ctx, baseURL, filters, opts)
	if res := args.Get(0); res != nil {
		return res.(*cmsdata.FetchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func testDatasets() *DatasetTable {
	return NewDatasetTable(&config.CMSConfig{
		BaseURL:  "https://data.example.test/dataset/",
		DataYear: "2022",
	})
}

func fieldsOf(filters []cmsdata.Filter) map[string]cmsdata.Filter {
	out := make(map[string]cmsdata.Filter)
	for _, f := range filters {
		if _, ok := f.Value.(string); ok && f.Value == "" {
			continue
		}
		out[f.Field+string(f.Operator)] = f
	}
	return out
}

func TestPhysicianAdapter_SearchProviders(t *testing.T) {
	fetcher := new(mockFetcher)
	adapter := NewPhysicianAdapter(fetcher, testDatasets())

	minBenes := 50.0
	params := repositories.ProviderSearchParams{
		State:                  "tx",
		Specialties:            []string{"Nephrology"},
		MinBeneficiaries:       &minBenes,
		MinChronicConditionPct: map[string]float64{"ckd": 30, "unknown": 5},
		SortBy:                 "beneficiaries",
		Paging:                 repositories.Paging{FetchAll: true, MaxResults: 500},
	}

	expectedURL := "https://data.example.test/dataset/8889d81e-2ee7-448f-8713-f071038289b5/data"
	fetcher.On("FetchPaginated", mock.Anything, expectedURL, mock.Anything, cmsdata.FetchOptions{
		SortField:       "Tot_Benes",
		SortDescending:  true,
		FetchAllPages:   true,
		MaxTotalResults: 500,
	}).Return(&cmsdata.FetchResult{
		Rows:      []cmsdata.RawRow{{"Rndrng_NPI": "1111111111", "Tot_Benes": "90"}},
		PageCount: 1,
	}, nil)

	result, err := adapter.SearchProviders(context.Background(), params)
	require.NoError(t, err)
	fetcher.AssertExpectations(t)

	assert.Equal(t, 1, result.TotalReturned)
	assert.Equal(t, "2022", result.DataYear)
	assert.Equal(t, "1111111111", result.Records[0].NPI)

	filters := fetcher.Calls[0].Arguments.Get(2).([]cmsdata.Filter)
	byField := fieldsOf(filters)
	assert.Equal(t, "TX", byField["Rndrng_Prvdr_State_Abrvtn="].Value)
	assert.Equal(t, []string{"Nephrology"}, byField["Rndrng_Prvdr_TypeIN"].Value)
	assert.Equal(t, 30.0, byField["Bene_CC_PH_CKD_V2_Pct>="].Value)
	assert.NotContains(t, byField, "unknown>=")
}

func TestPhysicianAdapter_UnknownYearIsValidationError(t *testing.T) {
	fetcher := new(mockFetcher)
	adapter := NewPhysicianAdapter(fetcher, testDatasets())

	_, err := adapter.SearchServices(context.Background(), repositories.ServiceSearchParams{Year: "1999"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	fetcher.AssertNotCalled(t, "FetchPaginated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPhysicianAdapter_PropagatesFetchErrors(t *testing.T) {
	fetcher := new(mockFetcher)
	adapter := NewPhysicianAdapter(fetcher, testDatasets())

	upstream := apperrors.NewExternalError("dataset API request failed", &cmsdata.StatusError{StatusCode: 500})
	fetcher.On("FetchPaginated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, upstream)

	_, err := adapter.SearchGeography(context.Background(), repositories.GeographySearchParams{Level: "national"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))

	var statusErr *cmsdata.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestServiceFilters(t *testing.T) {
	drug := true
	filters := ServiceFilters(repositories.ServiceSearchParams{
		NPI:        "1234567893",
		HCPCSCodes: []string{" j0881", "96372", ""},
		DrugOnly:   &drug,
	})

	byField := fieldsOf(filters)
	assert.Equal(t, "1234567893", byField["Rndrng_NPI="].Value)
	assert.Equal(t, []string{"J0881", "96372"}, byField["HCPCS_CdIN"].Value)
	assert.Equal(t, "Y", byField["HCPCS_Drug_Ind="].Value)

	q := cmsdata.BuildFilterURL("https://x.test/data", filters, cmsdata.FetchOptions{})
	assert.Contains(t, q, "filter%5B0%5D%5Bpath%5D=Rndrng_NPI")
	assert.Contains(t, q, "filter%5B1%5D%5Bpath%5D=HCPCS_Cd")
	assert.NotContains(t, q, "filter%5B3%5D")
}

func TestGeographyFilters_NormalizesLevel(t *testing.T) {
	byField := fieldsOf(GeographyFilters(repositories.GeographySearchParams{Level: "NATIONAL"}))
	assert.Equal(t, "National", byField["Rndrng_Prvdr_Geo_Lvl="].Value)
}

func TestProviderFilters_EntityType(t *testing.T) {
	byField := fieldsOf(ProviderFilters(repositories.ProviderSearchParams{EntityType: "organization"}))
	assert.Equal(t, "O", byField["Rndrng_Prvdr_Ent_Cd="].Value)
}

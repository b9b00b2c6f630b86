package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/entities"
)

func TestStaticCatalog_LookupIsCaseInsensitive(t *testing.T) {
	c := NewStaticCatalog(DefaultIndications())

	ind, ok := c.GetIndicationByID("  Anemia-CKD ")
	require.True(t, ok)
	assert.Equal(t, "anemia-ckd", ind.ID)
	assert.Equal(t, 30.0, ind.ComorbidityFilters["ckd"])

	_, ok = c.GetIndicationByID("does-not-exist")
	assert.False(t, ok)
}

func TestStaticCatalog_ReturnsCopies(t *testing.T) {
	c := NewStaticCatalog(DefaultIndications())

	ind, ok := c.GetIndicationByID("anemia-ckd")
	require.True(t, ok)
	ind.HCPCS[0] = "XXXXX"
	ind.ComorbidityFilters["ckd"] = 99

	again, _ := c.GetIndicationByID("anemia-ckd")
	assert.Equal(t, "J0881", again.HCPCS[0])
	assert.Equal(t, 30.0, again.ComorbidityFilters["ckd"])
}

func TestStaticCatalog_SkipsDuplicatesAndBlankIDs(t *testing.T) {
	c := NewStaticCatalog([]entities.Indication{
		{ID: "a", Name: "first"},
		{ID: "A", Name: "second"},
		{ID: " ", Name: "blank"},
		{ID: "b", Name: "third"},
	})

	all := c.GetAllIndications()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Name)
	assert.Equal(t, "third", all[1].Name)
}

func TestDefaultIndications_AreUsable(t *testing.T) {
	for _, ind := range DefaultIndications() {
		assert.NotEmpty(t, ind.Specialties, ind.ID)
		assert.NotEmpty(t, ind.RelevantCodes(), ind.ID)
		for key := range ind.ComorbidityFilters {
			_, known := entities.ChronicConditionColumns[key]
			assert.True(t, known, "%s uses unknown comorbidity %q", ind.ID, key)
		}
	}
}

package catalog

import "github.com/zatekoja/physiciansearch/backend/internal/domain/entities"

// DefaultIndications is the built-in catalog. Specialty names match the
// Rndrng_Prvdr_Type values published in the Medicare datasets.
func DefaultIndications() []entities.Indication {
	return []entities.Indication{
		{
			ID:          "anemia-ckd",
			Name:        "Anemia in chronic kidney disease",
			Description: "Anemia managed with erythropoiesis-stimulating agents in CKD patients",
			ICD10:       []string{"D63.1", "N18.3", "N18.4", "N18.5", "N18.6"},
			CPT:         []string{"96372"},
			HCPCS:       []string{"J0881", "J0885", "J0887", "J0888"},
			Specialties: []string{"Nephrology", "Hematology-Oncology"},
			ComorbidityFilters: map[string]float64{
				"ckd": 30,
			},
		},
		{
			ID:          "rheumatoid-arthritis",
			Name:        "Rheumatoid arthritis",
			Description: "Biologic infusion and injection therapy for rheumatoid arthritis",
			ICD10:       []string{"M05.79", "M06.9"},
			CPT:         []string{"96365", "96413"},
			HCPCS:       []string{"J0129", "J1745", "J0717", "J3262"},
			Specialties: []string{"Rheumatology"},
			ComorbidityFilters: map[string]float64{
				"arthritis": 40,
			},
		},
		{
			ID:          "wet-amd",
			Name:        "Neovascular (wet) age-related macular degeneration",
			Description: "Intravitreal anti-VEGF therapy",
			ICD10:       []string{"H35.32", "H35.3210", "H35.3220"},
			CPT:         []string{"67028"},
			HCPCS:       []string{"J0178", "J2778", "J9035", "J0179"},
			Specialties: []string{"Ophthalmology"},
		},
		{
			ID:          "osteoporosis",
			Name:        "Osteoporosis",
			Description: "Antiresorptive and anabolic injectable therapy",
			ICD10:       []string{"M81.0", "M80.08XA"},
			CPT:         []string{"77080"},
			HCPCS:       []string{"J0897", "J3489", "J3110"},
			Specialties: []string{"Endocrinology", "Rheumatology", "Internal Medicine"},
			ComorbidityFilters: map[string]float64{
				"osteoporosis": 20,
			},
		},
		{
			ID:          "heart-failure",
			Name:        "Heart failure",
			Description: "Diagnostic imaging and device therapy for heart failure",
			ICD10:       []string{"I50.22", "I50.32", "I50.42", "I50.9"},
			CPT:         []string{"93306", "33249", "93289"},
			Specialties: []string{"Cardiology"},
			ComorbidityFilters: map[string]float64{
				"heart_failure": 20,
			},
		},
		{
			ID:          "multiple-myeloma",
			Name:        "Multiple myeloma",
			Description: "Anti-CD38 and proteasome inhibitor therapy",
			ICD10:       []string{"C90.00", "C90.01"},
			CPT:         []string{"96401", "96413"},
			HCPCS:       []string{"J9145", "J9144", "J9041", "J9047"},
			Specialties: []string{"Hematology-Oncology", "Medical Oncology", "Hematology"},
			ComorbidityFilters: map[string]float64{
				"cancer": 20,
			},
		},
	}
}

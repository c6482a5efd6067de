package project

// The three organizations that predate the projects table. Their
// rosters, rates and budgets were fixed by contract and are compiled in
// rather than stored; their ids appear in customer bookmarks and must
// keep working.

const (
	LegacyRedCross          = "redcross"
	LegacyAdvokatforeningen = "advokatforeningen"
	LegacyInfunnel          = "infunnel"
)

func IsLegacyOrganization(id string) bool {
	switch id {
	case LegacyRedCross, LegacyAdvokatforeningen, LegacyInfunnel:
		return true
	}
	return false
}

func legacyConfig(id string) (OrganizationConfig, bool) {
	switch id {
	case LegacyInfunnel:
		total := 630.0
		return OrganizationConfig{
			OrganizationID:   LegacyInfunnel,
			OrganizationName: "Infunnel/Holmen",
			Consultants: map[string]float64{
				"Thomas":   1550,
				"Njål":     1550,
				"Mathias":  1550,
				"Madelein": 1550,
			},
			ProjectManager: map[string]float64{
				"Kariann (Prosjektleder)": 1550,
			},
			TotalBudget:            &total,
			Categories:             []string{"Utvikling", "Design", "Møter"},
			IncludeManagerInBudget: true,
		}, true

	case LegacyAdvokatforeningen:
		total := 1886.0
		return OrganizationConfig{
			OrganizationID:   LegacyAdvokatforeningen,
			OrganizationName: "Advokatforeningen CRM",
			Consultants: map[string]float64{
				"Thomas":  1574,
				"Marta":   1574,
				"Mateusz": 1574,
				"Tomasz":  1574,
			},
			ProjectManager: map[string]float64{
				"Kariann (Prosjektleder)": 1574,
			},
			TotalBudget:            &total,
			Categories:             []string{"CRM Utvikling", "Database", "Testing"},
			IncludeManagerInBudget: true,
		}, true

	case LegacyRedCross:
		monthly := 200.0
		return OrganizationConfig{
			OrganizationID:   LegacyRedCross,
			OrganizationName: "Røde Kors",
			Consultants: map[string]float64{
				"Njål":        1550,
				"Mathias":     1550,
				"Per":         1550,
				"Pepe":        1550,
				"Ulrikke":     1550,
				"Andri":       1550,
				"Philip":      1550,
				"Nick":        1550,
				"MVP/Rådgiver": 1550,
			},
			ProjectManager: map[string]float64{
				"Kariann (Prosjektleder)": 1550,
			},
			MonthlyBudget: &monthly,
			Categories:    []string{"Utvikling", "Forvaltning", "Møter"},
			// The monthly cap counts consultant hours only; management
			// is billed outside the frame agreement.
			IncludeManagerInBudget: false,
		}, true
	}

	return OrganizationConfig{}, false
}

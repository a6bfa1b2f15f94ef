package e2e

// ActivityRow builds one reporting row with the column names the
// institutional spreadsheets use. Numbers are float64 because that is
// what JSON decoding produces for spreadsheet exports.
func ActivityRow(nro, year int, objectiveID, objectiveText, activity, detail string) map[string]any {
	row := map[string]any{
		"Nro":                 float64(nro),
		"Año":                 float64(year),
		"Código":              objectiveID,
		"Objetivo específico": objectiveText,
		"Actividad única":     activity,
	}
	if detail != "" {
		row["Detalle actividad"] = detail
	}
	return row
}

// CatalogRow builds one objective catalog record.
func CatalogRow(objectiveID, objectiveText string) map[string]any {
	return map[string]any{
		"Código":              objectiveID,
		"Objetivo específico": objectiveText,
	}
}

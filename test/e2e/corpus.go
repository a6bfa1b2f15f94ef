// Package e2e provides end-to-end tests over a realistic reporting corpus.
package e2e

import (
	"fmt"
	"strconv"
)

// PlanObjective is one specific objective of the strategic plan, with the
// thematic category its wording implies under the keyword strategy.
type PlanObjective struct {
	ID       string
	Text     string
	Category string
}

// RowCase is the expected similarity verdict for one corpus row. Scores
// are asserted as a range because mid-band rows depend on corpus-wide
// document frequencies; rows built for an exact outcome use Min == Max.
type RowCase struct {
	RecordID    string
	MinScore    float64
	MaxScore    float64
	WantBucket  string
	WantMiss    bool
	Description string
}

// Corpus holds activity rows, the objective catalog they report against,
// and the expected verdicts for both strategies.
type Corpus struct {
	Objectives      []PlanObjective
	Rows            []map[string]any
	SimilarityCases []RowCase
	Categories      map[string]string

	MissRecordID  string
	EmptyRecordID string

	TotalRows       int
	TotalObjectives int
}

// BuildCorpus returns a plan of 12 objectives across all six thematic
// lines, with three reporting rows per objective: one that copies the
// objective verbatim, one that overlaps it partially, and one that is
// unrelated to the whole catalog. Two extra rows cover a catalog miss
// and an empty activity. Objective wordings share no content words with
// each other, so each row's ranking against the catalog is fixed.
func BuildCorpus() *Corpus {
	objectives := []PlanObjective{
		{"OE01", "Implementar el monitoreo permanente de indicadores académicos", "calidad"},
		{"OE02", "Fortalecer la evaluación institucional continua", "calidad"},
		{"OE03", "Suscribir convenios de cooperación con universidades extranjeras", "convenios"},
		{"OE04", "Impulsar alianzas estratégicas con el sector productivo", "convenios"},
		{"OE05", "Ampliar la capacitación pedagógica del cuerpo docente", "docencia"},
		{"OE06", "Renovar los cursos de grado con metodologías activas", "docencia"},
		{"OE07", "Incrementar los proyectos de investigación aplicada", "investigación"},
		{"OE08", "Promover la publicación científica en revistas arbitradas", "investigación"},
		{"OE09", "Extender la vinculación con la comunidad local", "extensión"},
		{"OE10", "Desarrollar programas sociales de extensión universitaria", "extensión"},
		{"OE11", "Modernizar la gestión administrativa central", "gestión"},
		{"OE12", "Instalar la planificación presupuestaria plurianual", "gestión"},
	}

	// Each partial activity repeats two content words of its own objective
	// and otherwise uses words absent from every catalog entry.
	partials := []string{
		"Realizar monitoreo de indicadores mediante tablero mensual",
		"Evaluar la evaluación institucional con encuestas anuales",
		"Organizar convenios de cooperación este semestre",
		"Consolidar alianzas con el sector gastronómico",
		"Diseñar capacitación docente en aulas virtuales",
		"Actualizar cursos de grado durante el receso",
		"Ejecutar proyectos de investigación sobre agua potable",
		"Monitorear la publicación científica semestralmente",
		"Crear vinculación con la comunidad mediante ferias",
		"Expandir programas sociales en barrios cercanos",
		"Evaluar la gestión administrativa por auditorías internas",
		"Actualizar la planificación presupuestaria cada año",
	}

	// Unrelated activities share no content words with any catalog entry.
	unrelated := []string{
		"Torneo deportivo entre funcionarios",
		"Pintura del estacionamiento norte",
		"Compra de insumos de limpieza",
		"Festejo aniversario del club juvenil",
		"Cambio de luminarias pasillo oeste",
		"Arreglo del techo biblioteca antigua",
		"Mudanza oficina contable planta baja",
		"Jornada recreativa fin de ciclo",
		"Venta de rifas cooperadora escolar",
		"Refacción cocina comedor estudiantil",
		"Poda de árboles patio trasero",
		"Campaña vacunación mascotas barrio",
	}

	c := &Corpus{
		Objectives: objectives,
		Categories: make(map[string]string),
	}

	nro := 0
	addRow := func(obj PlanObjective, activity, detail string, tc RowCase) {
		nro++
		id := strconv.Itoa(nro)
		tc.RecordID = id
		c.Rows = append(c.Rows, ActivityRow(nro, 2024, obj.ID, obj.Text, activity, detail))
		c.SimilarityCases = append(c.SimilarityCases, tc)
		c.Categories[id] = obj.Category
	}

	for i, obj := range objectives {
		addRow(obj, obj.Text, "", RowCase{
			MinScore: 100, MaxScore: 100, WantBucket: "High",
			Description: fmt.Sprintf("verbatim copy of %s scores 100", obj.ID),
		})
		addRow(obj, partials[i], "", RowCase{
			MinScore: 50, MaxScore: 100,
			Description: fmt.Sprintf("partial overlap with %s stays on the top-rank ladder", obj.ID),
		})
		detail := ""
		if i%4 == 0 {
			detail = "previsto para el segundo semestre"
		}
		addRow(obj, unrelated[i], detail, RowCase{
			MinScore: 30, MaxScore: 30, WantBucket: "Low",
			Description: fmt.Sprintf("activity unrelated to the catalog under %s is vague", obj.ID),
		})
	}

	missObjective := PlanObjective{ID: "OE99", Text: "Objetivo fuera del plan vigente", Category: "other"}
	addRow(missObjective, "Redactar informe preliminar", "", RowCase{
		MinScore: 0, MaxScore: 0, WantBucket: "Low", WantMiss: true,
		Description: "objective absent from the catalog is a miss",
	})
	c.MissRecordID = strconv.Itoa(nro)

	addRow(objectives[0], "", "", RowCase{
		MinScore: 30, MaxScore: 30, WantBucket: "Low",
		Description: "empty activity is vague, not a miss",
	})
	c.EmptyRecordID = strconv.Itoa(nro)

	c.TotalRows = len(c.Rows)
	c.TotalObjectives = len(objectives)
	return c
}

// CatalogRows returns the objective catalog as loose spreadsheet records.
func (c *Corpus) CatalogRows() []map[string]any {
	out := make([]map[string]any, len(c.Objectives))
	for i, obj := range c.Objectives {
		out[i] = CatalogRow(obj.ID, obj.Text)
	}
	return out
}

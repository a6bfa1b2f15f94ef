package scoring

// Category is one thematic line of the strategic plan together with the
// keywords that signal it. Order matters: categorization picks the
// first category with a keyword hit.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Config holds the tunables of the scoring engine. The similarity
// decision thresholds are deliberately absent: they are part of the
// scoring contract and live as constants in this package.
type Config struct {
	Strategy string `yaml:"strategy"` // default: similarity
	Workers  int    `yaml:"workers"`  // default: 4

	// TF-IDF settings for the similarity strategy
	NgramMin  int      `yaml:"ngram_min"` // default: 1
	NgramMax  int      `yaml:"ngram_max"` // default: 2
	Stopwords []string `yaml:"stopwords"`

	// Keyword strategy settings
	Categories      []Category `yaml:"categories"`
	DefaultCategory string     `yaml:"default_category"` // default: other
	ActionVerbs     []string   `yaml:"action_verbs"`

	SemanticWeight    float64 `yaml:"semantic_weight"`    // default: 0.40
	ThematicWeight    float64 `yaml:"thematic_weight"`    // default: 0.40
	OperationalWeight float64 `yaml:"operational_weight"` // default: 0.20
}

// DefaultConfig returns the scoring configuration tuned for Spanish
// institutional reporting, the corpus this engine was built for.
func DefaultConfig() *Config {
	return &Config{
		Strategy: "similarity",
		Workers:  4,

		NgramMin: 1,
		NgramMax: 2,
		Stopwords: []string{
			"de", "la", "el", "los", "las", "y", "en", "del", "para",
			"con", "a", "por", "una", "un", "al", "que", "se", "su", "sus",
		},

		Categories: []Category{
			{Name: "calidad", Keywords: []string{"monitoreo", "seguimiento", "evaluación", "mejora", "indicador"}},
			{Name: "convenios", Keywords: []string{"convenio", "articulación", "alianza", "acuerdo"}},
			{Name: "docencia", Keywords: []string{"capacitación", "formación", "docente", "curso", "clase"}},
			{Name: "investigación", Keywords: []string{"proyecto", "investigación", "paper", "publicación"}},
			{Name: "extensión", Keywords: []string{"extensión", "comunidad", "social", "vinculación"}},
			{Name: "gestión", Keywords: []string{"reunión", "planificación", "comisión", "organización", "gestión"}},
		},
		DefaultCategory: "other",
		ActionVerbs: []string{
			"realizar", "implementar", "evaluar", "crear", "organizar",
			"desarrollar", "monitorear", "diseñar", "consolidar", "actualizar",
		},

		SemanticWeight:    0.40,
		ThematicWeight:    0.40,
		OperationalWeight: 0.20,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.Strategy == "" {
		c.Strategy = defaults.Strategy
	}
	if c.Workers == 0 {
		c.Workers = defaults.Workers
	}

	if c.NgramMin == 0 {
		c.NgramMin = defaults.NgramMin
	}
	if c.NgramMax == 0 {
		c.NgramMax = defaults.NgramMax
	}
	if c.Stopwords == nil {
		c.Stopwords = defaults.Stopwords
	}

	if c.Categories == nil {
		c.Categories = defaults.Categories
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = defaults.DefaultCategory
	}
	if c.ActionVerbs == nil {
		c.ActionVerbs = defaults.ActionVerbs
	}

	if c.SemanticWeight == 0 {
		c.SemanticWeight = defaults.SemanticWeight
	}
	if c.ThematicWeight == 0 {
		c.ThematicWeight = defaults.ThematicWeight
	}
	if c.OperationalWeight == 0 {
		c.OperationalWeight = defaults.OperationalWeight
	}
}

package scoring

// Importance ranks how urgently a category should be probed.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Rank returns the sort weight for an importance tier (high sorts first).
func (i Importance) Rank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	default:
		return 2
	}
}

// Canonical category names. These are the only categories the system knows;
// follow-up answers are always tagged with one of them.
const (
	CategoryCoping        = "Coping Mechanisms"
	CategoryCommunication = "Communication Patterns"
	CategorySupport       = "Support System"
	CategoryRoutines      = "Daily Routines"
	CategoryTriggers      = "Triggers & Stressors"
	CategoryFutureVision  = "Future Vision"
	CategoryPhysical      = "Physical Health"
	CategoryRelationships = "Relationships"
)

// CatalogEntry describes one topical category of the profile.
type CatalogEntry struct {
	Category    string
	Description string
	Importance  Importance
}

// catalog declaration order is the tie-break order for equal importance,
// so batches stay deterministic for a given answer set.
var catalog = []CatalogEntry{
	{
		Category:    CategoryCoping,
		Description: "How the user currently deals with difficult moments",
		Importance:  ImportanceHigh,
	},
	{
		Category:    CategoryTriggers,
		Description: "Situations or people that reliably set the user off",
		Importance:  ImportanceHigh,
	},
	{
		Category:    CategorySupport,
		Description: "Who the user can lean on and how often they actually do",
		Importance:  ImportanceHigh,
	},
	{
		Category:    CategoryCommunication,
		Description: "How the user expresses needs and handles conflict",
		Importance:  ImportanceMedium,
	},
	{
		Category:    CategoryRoutines,
		Description: "Structure of a typical day: sleep, meals, work rhythm",
		Importance:  ImportanceMedium,
	},
	{
		Category:    CategoryPhysical,
		Description: "Energy, exercise, and physical complaints",
		Importance:  ImportanceMedium,
	},
	{
		Category:    CategoryRelationships,
		Description: "Closeness and friction in the user's key relationships",
		Importance:  ImportanceMedium,
	},
	{
		Category:    CategoryFutureVision,
		Description: "What a better situation would concretely look like",
		Importance:  ImportanceLow,
	},
}

// Catalog returns a copy of the fixed category catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

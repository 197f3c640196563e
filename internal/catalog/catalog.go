package catalog

// Methodology is one reference entry of the agency's process catalog.
// The catalog is seeded once at startup and read-only afterwards.
type Methodology struct {
	ID                 int64  `json:"id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	TypicalEffortHours int    `json:"typical_effort_hours"`
	RequiresDetails    bool   `json:"requires_details"`
}

// The two fixed categories: mining (data collection) and assembling
// (consolidation of findings into deliverables).
const (
	CategoryMining     = "БПМ"
	CategoryAssembling = "БПА"
)

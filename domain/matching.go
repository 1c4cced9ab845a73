package domain

// ComparableRecord is any entity (supplier, customer) that can be checked for
// duplicates. Empty fields are treated as absent.
type ComparableRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// PartialRecord is the record being created, before it has an id.
type PartialRecord struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

type MatchResult struct {
	Record  ComparableRecord `json:"record"`
	Score   float64          `json:"score"`
	Reasons []string         `json:"reasons"`
}

// Reasons attached to a MatchResult. They are shown to operators verbatim.
const (
	ReasonSimilarName = "Nombre similar"
	ReasonSameEmail   = "Email idéntico"
	ReasonSamePhone   = "Teléfono idéntico"
	ReasonSameWebsite = "Sitio web idéntico"
)

type ItemKind string

const (
	ItemKindProduct  ItemKind = "product"
	ItemKindCategory ItemKind = "category"
	ItemKindBrand    ItemKind = "brand"
	ItemKindSKU      ItemKind = "sku"
	ItemKindRecent   ItemKind = "recent"
	ItemKindPopular  ItemKind = "popular"
)

type SearchableItem struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Kind ItemKind `json:"kind"`
}

type RankedItem struct {
	Item  SearchableItem `json:"item"`
	Score float64        `json:"score"`
}

// StructuredCandidate is an entity offered in a picker where the operator may
// type a name, part of a phone number or part of an email.
type StructuredCandidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type RankedCandidate struct {
	Candidate StructuredCandidate `json:"candidate"`
	Score     float64             `json:"score"`
}

// UsageRecord counts how often an entity was picked and when it was last
// picked. The JSON shape is the persisted format of the usage store.
type UsageRecord struct {
	EntityID       string `json:"entityId"`
	Count          int    `json:"count"`
	LastUsedMillis int64  `json:"lastUsedMillis"`
}

package domain

// Region identifiers. The catalog and resolver only distinguish the
// Chinese mainland deployment from the international one.
const (
	RegionCN   = "CN"
	RegionINTL = "INTL"
)

// LinkContext carries the read-only parameters threaded into every
// catalog link builder. Builders must never mutate it.
type LinkContext struct {
	Title    string
	Query    string
	Category string
	Locale   string
	Region   string
}

// SearchText returns the text a search-style link should carry:
// the explicit query if present, else the title.
func (c LinkContext) SearchText() string {
	if c.Query != "" {
		return c.Query
	}
	return c.Title
}

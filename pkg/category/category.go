package category

import "slices"

// Category is a lineage classification.
type Category int

const (
	Unclassified Category = iota
	Patriarch
	Tribe
	Royal
	Priestly
)

// TribeParent is the only parent under which tribe founders are classified
// as [Tribe]. Elsewhere a "Levi" or "Joseph" is just a name.
const TribeParent = "Jacob (Israel)"

// Border is the border colour shared by every node regardless of category.
const Border = "#a78bfa"

var (
	patriarchs = []string{
		"Adam", "Noah", "Abraham", "Isaac", "Jacob (Israel)", "David", "Jesus",
	}
	tribes = []string{
		"Reuben", "Simeon", "Levi", "Judah", "Dan", "Naphtali",
		"Gad", "Asher", "Issachar", "Zebulun", "Joseph", "Benjamin",
	}
	royalLine = []string{
		"David", "Solomon", "Rehoboam", "Abijah", "Asa", "Jehoshaphat",
		"Jehoram", "Uzziah", "Jotham", "Ahaz", "Hezekiah", "Manasseh",
		"Amon", "Josiah", "Jeconiah", "Shealtiel", "Zerubbabel", "Abiud",
		"Eliakim", "Azor", "Zadok", "Achim", "Eliud", "Eleazar", "Matthan",
		"Jacob", "Joseph (husband of Mary)", "Jesus",
	}
	priestlyLine = []string{
		"Levi", "Kohath", "Amram", "Aaron", "Eleazar", "Phinehas",
	}
)

// All lists every category in legend order.
var All = []Category{Patriarch, Tribe, Royal, Priestly, Unclassified}

// Classify returns the category of name given its parent's name. parent is
// empty for the root of the displayed tree. The result depends only on the
// two names, never on position or search state.
func Classify(name, parent string) Category {
	switch {
	case slices.Contains(patriarchs, name):
		return Patriarch
	case parent == TribeParent && slices.Contains(tribes, name):
		return Tribe
	case slices.Contains(royalLine, name):
		return Royal
	case slices.Contains(priestlyLine, name):
		return Priestly
	default:
		return Unclassified
	}
}

// Color returns the node background colour as a CSS hex string.
func (c Category) Color() string {
	switch c {
	case Patriarch:
		return "#a78bfa"
	case Tribe:
		return "#60a5fa"
	case Royal:
		return "#fde047"
	case Priestly:
		return "#4ade80"
	default:
		return "#ffffff"
	}
}

// Label returns the legend label.
func (c Category) Label() string {
	switch c {
	case Patriarch:
		return "Patriarchs"
	case Tribe:
		return "Tribes of Israel"
	case Royal:
		return "Royal Line"
	case Priestly:
		return "Priestly Line"
	default:
		return "Other"
	}
}

// String returns the short machine name used in JSON and CSS classes.
func (c Category) String() string {
	switch c {
	case Patriarch:
		return "patriarch"
	case Tribe:
		return "tribe"
	case Royal:
		return "royal"
	case Priestly:
		return "priestly"
	default:
		return "unclassified"
	}
}

// Parse is the inverse of [Category.String]. Unknown names map to
// Unclassified with ok false.
func Parse(s string) (Category, bool) {
	for _, c := range All {
		if c.String() == s {
			return c, true
		}
	}
	return Unclassified, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	*c, _ = Parse(string(b))
	return nil
}

// Entry is one legend row.
type Entry struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
}

// Legend returns the colour legend in display order.
func Legend() []Entry {
	out := make([]Entry, len(All))
	for i, c := range All {
		out[i] = Entry{Category: c, Label: c.Label(), Color: c.Color()}
	}
	return out
}

// Members returns a copy of the membership list for c. Unclassified has none.
func Members(c Category) []string {
	switch c {
	case Patriarch:
		return slices.Clone(patriarchs)
	case Tribe:
		return slices.Clone(tribes)
	case Royal:
		return slices.Clone(royalLine)
	case Priestly:
		return slices.Clone(priestlyLine)
	default:
		return nil
	}
}

package core

// Category labels of the closed enumeration.
const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills & Utilities"
	CategoryHealthcare    = "Healthcare"
	CategoryTravel        = "Travel"
	CategoryEducation     = "Education"
	CategoryOther         = "Other"
)

var categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryTravel,
	CategoryEducation,
	CategoryOther,
}

// Style is the visual token of a category: badge classes plus a chart colour.
type Style struct {
	Badge string
	Color string // hex RGB, used by charts
}

var categoryStyles = map[string]Style{
	CategoryFood:          {Badge: "badge badge--red", Color: "#ef4444"},
	CategoryTransport:     {Badge: "badge badge--blue", Color: "#3b82f6"},
	CategoryShopping:      {Badge: "badge badge--purple", Color: "#a855f7"},
	CategoryEntertainment: {Badge: "badge badge--pink", Color: "#ec4899"},
	CategoryBills:         {Badge: "badge badge--orange", Color: "#f97316"},
	CategoryHealthcare:    {Badge: "badge badge--green", Color: "#22c55e"},
	CategoryTravel:        {Badge: "badge badge--cyan", Color: "#06b6d4"},
	CategoryEducation:     {Badge: "badge badge--yellow", Color: "#eab308"},
	CategoryOther:         {Badge: "badge badge--gray", Color: "#6b7280"},
}

// Categories returns the known category labels in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

// IsCategory reports whether name belongs to the enumeration.
func IsCategory(name string) bool {
	_, ok := categoryStyles[name]
	return ok
}

// CategoryStyle returns the style of a category, falling back to Other
// for names outside the enumeration.
func CategoryStyle(name string) Style {
	if s, ok := categoryStyles[name]; ok {
		return s
	}
	return categoryStyles[CategoryOther]
}

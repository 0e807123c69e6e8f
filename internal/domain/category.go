package domain

// Subcategory groups products under an OPTGROUP label. Names are unique
// within their category.
type Subcategory struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// CategoryStats are the counters CoolPC prints in the category summary line.
// They are parsed upstream and carried as-is, never recomputed.
type CategoryStats struct {
	TotalItems      int `json:"total_items"`
	HotItems        int `json:"hot_items"`
	WithImages      int `json:"with_images"`
	WithDiscussions int `json:"with_discussions"`
	PriceChanges    int `json:"price_changes"`
	TimeLimited     int `json:"time_limited"`
}

// Category is one SELECT block of the price list.
type Category struct {
	CategoryID    string        `json:"category_id"`   // Unique across the catalog
	CategoryName  string        `json:"category_name"` // Display name
	Summary       string        `json:"summary"`       // Raw summary line
	Stats         CategoryStats `json:"stats"`
	Subcategories []Subcategory `json:"subcategories"`
}

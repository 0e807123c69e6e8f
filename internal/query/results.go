package query

import "coolpc/catalog/internal/domain"

// SearchResult is the reduced product view returned by Search. RawText and
// the source index are deliberately left out.
type SearchResult struct {
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Specs          []string `json:"specs"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"original_price,omitempty"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory"`
	Markers        []string `json:"markers"`
}

// ModelResult is the outcome of a GetByModel lookup. A miss is a normal
// result, not an error: Found is false and Model echoes the queried value.
type ModelResult struct {
	Found       bool            `json:"found"`
	Model       string          `json:"model"`
	Message     string          `json:"message,omitempty"`
	Category    string          `json:"category,omitempty"`
	Subcategory string          `json:"subcategory,omitempty"`
	Product     *domain.Product `json:"product,omitempty"`
}

// SubcategorySummary is one subcategory entry in the catalog index.
type SubcategorySummary struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}

// CategoryOverview is one category entry in the catalog index.
type CategoryOverview struct {
	CategoryID    string               `json:"category_id"`
	CategoryName  string               `json:"category_name"`
	Stats         domain.CategoryStats `json:"stats"`
	Subcategories []SubcategorySummary `json:"subcategories"`
}

// CategoryProduct is the product view returned by CategoryProducts. The
// owning category is implied by the request, only the subcategory is kept.
type CategoryProduct struct {
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Specs          []string `json:"specs"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"original_price,omitempty"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
	Subcategory    string   `json:"subcategory"`
	Markers        []string `json:"markers"`
}

// CategoryProductsResult is the outcome of a CategoryProducts listing.
// TotalProducts counts matches before the limit was applied, Showing after.
type CategoryProductsResult struct {
	Found             bool              `json:"found"`
	CategoryID        string            `json:"category_id"`
	CategoryName      string            `json:"category_name,omitempty"`
	SubcategoryFilter *string           `json:"subcategory_filter"`
	TotalProducts     int               `json:"total_products"`
	Showing           int               `json:"showing"`
	Products          []CategoryProduct `json:"products"`
	Message           string            `json:"message,omitempty"`
}

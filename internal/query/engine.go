package query

import (
	"fmt"
	"strings"

	"coolpc/catalog/internal/catalog"
	"coolpc/catalog/internal/domain"
)

const (
	// DefaultSearchLimit caps Search results when no limit is given.
	DefaultSearchLimit = 10
	// DefaultCategoryLimit caps CategoryProducts results when no limit is given.
	DefaultCategoryLimit = 20
)

// Engine answers catalog queries over an immutable store snapshot. Every
// operation is a pure read: no I/O, no locks, no state between calls.
type Engine struct {
	store *catalog.Store
}

func NewEngine(store *catalog.Store) *Engine {
	return &Engine{store: store}
}

// SearchParams are the accepted arguments of Search. Keyword is required,
// everything else is optional.
type SearchParams struct {
	Keyword  string
	Category string   // Substring filter on the category display name
	MinPrice *float64 // Inclusive
	MaxPrice *float64 // Inclusive
	Limit    int      // Defaults to DefaultSearchLimit when <= 0
}

// Search scans the catalog in source order and returns products whose
// combined brand, model, specs and raw text contain the keyword,
// case-insensitively. Traversal stops as soon as the limit is reached, so
// ties at the boundary resolve by catalog order.
func (e *Engine) Search(params SearchParams) []SearchResult {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results := make([]SearchResult, 0, limit)

	keyword := strings.ToLower(strings.TrimSpace(params.Keyword))
	if keyword == "" {
		return results
	}
	categoryFilter := strings.ToLower(strings.TrimSpace(params.Category))

	for _, category := range e.store.Categories() {
		if categoryFilter != "" && !strings.Contains(strings.ToLower(category.CategoryName), categoryFilter) {
			continue
		}

		for _, subcategory := range category.Subcategories {
			for _, product := range subcategory.Products {
				if !productMatches(product, keyword) {
					continue
				}
				if !priceWithin(product.Price, params.MinPrice, params.MaxPrice) {
					continue
				}

				results = append(results, SearchResult{
					Brand:          product.Brand,
					Model:          product.Model,
					Specs:          product.Specs,
					Price:          product.Price,
					OriginalPrice:  product.OriginalPrice,
					DiscountAmount: product.DiscountAmount,
					Category:       category.CategoryName,
					Subcategory:    subcategory.Name,
					Markers:        product.Markers,
				})
				if len(results) >= limit {
					return results
				}
			}
		}
	}

	return results
}

// GetByModel finds the first product whose model equals the queried one,
// case-insensitively. Model uniqueness is not enforced upstream, the first
// match in catalog order wins for duplicates.
func (e *Engine) GetByModel(model string) ModelResult {
	for _, category := range e.store.Categories() {
		for _, subcategory := range category.Subcategories {
			for i := range subcategory.Products {
				product := &subcategory.Products[i]
				if product.Model == "" || !strings.EqualFold(product.Model, model) {
					continue
				}
				return ModelResult{
					Found:       true,
					Model:       product.Model,
					Category:    category.CategoryName,
					Subcategory: subcategory.Name,
					Product:     product,
				}
			}
		}
	}

	return ModelResult{
		Found:   false,
		Model:   model,
		Message: fmt.Sprintf("no product with model %q", model),
	}
}

// ListCategories returns the structural index of the whole catalog: every
// category with its stats and per-subcategory product counts, in source order.
func (e *Engine) ListCategories() []CategoryOverview {
	categories := e.store.Categories()
	overview := make([]CategoryOverview, 0, len(categories))

	for _, category := range categories {
		subcategories := make([]SubcategorySummary, 0, len(category.Subcategories))
		for _, subcategory := range category.Subcategories {
			subcategories = append(subcategories, SubcategorySummary{
				Name:         subcategory.Name,
				ProductCount: len(subcategory.Products),
			})
		}
		overview = append(overview, CategoryOverview{
			CategoryID:    category.CategoryID,
			CategoryName:  category.CategoryName,
			Stats:         category.Stats,
			Subcategories: subcategories,
		})
	}

	return overview
}

// CategoryProductsParams are the accepted arguments of CategoryProducts.
// CategoryID is required and matched case-sensitively, ids are opaque keys.
type CategoryProductsParams struct {
	CategoryID      string
	SubcategoryName string // Optional, exact case-insensitive match
	Limit           int    // Defaults to DefaultCategoryLimit when <= 0
}

// CategoryProducts lists the products of one category, optionally narrowed to
// a single subcategory. Unknown ids and unknown subcategory names are normal
// not-found results.
func (e *Engine) CategoryProducts(params CategoryProductsParams) CategoryProductsResult {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}

	categories := e.store.Categories()
	var category *domain.Category
	for i := range categories {
		if categories[i].CategoryID == params.CategoryID {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		return CategoryProductsResult{
			Found:      false,
			CategoryID: params.CategoryID,
			Products:   []CategoryProduct{},
			Message:    fmt.Sprintf("no category with id %q", params.CategoryID),
		}
	}

	var subcategoryFilter *string
	subcategories := category.Subcategories
	if name := strings.TrimSpace(params.SubcategoryName); name != "" {
		subcategories = nil
		for i := range category.Subcategories {
			if strings.EqualFold(category.Subcategories[i].Name, name) {
				subcategories = category.Subcategories[i : i+1]
				subcategoryFilter = &category.Subcategories[i].Name
				break
			}
		}
		if subcategories == nil {
			return CategoryProductsResult{
				Found:        false,
				CategoryID:   category.CategoryID,
				CategoryName: category.CategoryName,
				Products:     []CategoryProduct{},
				Message: fmt.Sprintf("no subcategory %q in category %q (%s)",
					name, category.CategoryID, category.CategoryName),
			}
		}
	}

	total := 0
	for _, subcategory := range subcategories {
		total += len(subcategory.Products)
	}

	products := make([]CategoryProduct, 0, min(total, limit))
listing:
	for _, subcategory := range subcategories {
		for _, product := range subcategory.Products {
			products = append(products, CategoryProduct{
				Brand:          product.Brand,
				Model:          product.Model,
				Specs:          product.Specs,
				Price:          product.Price,
				OriginalPrice:  product.OriginalPrice,
				DiscountAmount: product.DiscountAmount,
				Subcategory:    subcategory.Name,
				Markers:        product.Markers,
			})
			if len(products) >= limit {
				break listing
			}
		}
	}

	return CategoryProductsResult{
		Found:             true,
		CategoryID:        category.CategoryID,
		CategoryName:      category.CategoryName,
		SubcategoryFilter: subcategoryFilter,
		TotalProducts:     total,
		Showing:           len(products),
		Products:          products,
	}
}

// productMatches reports whether the lowercased keyword appears anywhere in
// the product's combined searchable text.
func productMatches(product domain.Product, keyword string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		product.Brand,
		product.Model,
		strings.Join(product.Specs, " "),
		product.RawText,
	}, " "))
	return strings.Contains(haystack, keyword)
}

// priceWithin checks the inclusive optional price bounds.
func priceWithin(price float64, minPrice, maxPrice *float64) bool {
	if minPrice != nil && price < *minPrice {
		return false
	}
	if maxPrice != nil && price > *maxPrice {
		return false
	}
	return true
}

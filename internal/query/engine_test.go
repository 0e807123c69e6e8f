package query

import (
	"fmt"
	"testing"

	"coolpc/catalog/internal/catalog"
	"coolpc/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 {
	return &v
}

func testStore() *catalog.Store {
	return catalog.New([]domain.Category{
		{
			CategoryID:   "4",
			CategoryName: "處理器 CPU",
			Stats:        domain.CategoryStats{TotalItems: 3, HotItems: 1},
			Subcategories: []domain.Subcategory{
				{
					Name: "Intel",
					Products: []domain.Product{
						{
							Index:   "1",
							Brand:   "Intel",
							Model:   "i5-13400",
							Specs:   []string{"10核16緒", "2.5GHz", "UHD730"},
							Price:   6000,
							Markers: []string{domain.MarkerHot},
							RawText: "Intel i5-13400【10核16緒】2.5GHz/20M/UHD730 $6,000",
						},
						{
							Index:          "2",
							Brand:          "Intel",
							Model:          "i7-13700",
							Specs:          []string{"16核24緒", "2.1GHz"},
							Price:          12000,
							OriginalPrice:  price(12900),
							DiscountAmount: price(900),
							Markers:        []string{domain.MarkerPriceChange},
							RawText:        "Intel i7-13700【16核24緒】2.1GHz/30M $12,900↘$12,000",
						},
					},
				},
				{
					Name: "AMD",
					Products: []domain.Product{
						{
							Index:   "3",
							Brand:   "AMD",
							Model:   "R5 7600",
							Specs:   []string{"6核12緒", "3.8GHz"},
							Price:   6300,
							Markers: []string{},
							RawText: "AMD R5 7600【6核12緒】3.8GHz/32M 代理盒裝 $6,300",
						},
					},
				},
			},
		},
		{
			CategoryID:   "6",
			CategoryName: "記憶體 RAM",
			Stats:        domain.CategoryStats{TotalItems: 1},
			Subcategories: []domain.Subcategory{
				{
					Name: "DDR5",
					Products: []domain.Product{
						{
							Index:   "1",
							Brand:   "威剛 ADATA",
							Model:   "LANCER",
							Specs:   []string{"DDR5 6000", "16G*2"},
							Price:   1800,
							Markers: []string{},
							RawText: "威剛 ADATA LANCER DDR5 6000 16G*2 $1,800",
						},
					},
				},
			},
		},
	})
}

func TestSearchMatchesRawTextSubstring(t *testing.T) {
	engine := NewEngine(testStore())

	// Verbatim substring of raw_text, different case.
	results := engine.Search(SearchParams{Keyword: "uhd730"})
	require.Len(t, results, 1)
	assert.Equal(t, "i5-13400", results[0].Model)
	assert.Equal(t, "處理器 CPU", results[0].Category)
	assert.Equal(t, "Intel", results[0].Subcategory)
}

func TestSearchMatchesSpecsAndBrand(t *testing.T) {
	engine := NewEngine(testStore())

	results := engine.Search(SearchParams{Keyword: "DDR5"})
	require.Len(t, results, 1)
	assert.Equal(t, "LANCER", results[0].Model)

	results = engine.Search(SearchParams{Keyword: "intel"})
	assert.Len(t, results, 2)
}

func TestSearchNoMatchReturnsEmptyNotNil(t *testing.T) {
	engine := NewEngine(testStore())

	results := engine.Search(SearchParams{Keyword: "does-not-exist"})
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchCategoryFilterSkipsWholeCategories(t *testing.T) {
	engine := NewEngine(testStore())

	// "i" also appears in RAM products' raw text, but the category filter
	// limits traversal to the CPU category.
	results := engine.Search(SearchParams{Keyword: "6", Category: "cpu"})
	require.NotEmpty(t, results)
	for _, result := range results {
		assert.Equal(t, "處理器 CPU", result.Category)
	}

	results = engine.Search(SearchParams{Keyword: "i5", Category: "nonexistent"})
	assert.Empty(t, results)
}

func TestSearchPriceBounds(t *testing.T) {
	engine := NewEngine(testStore())

	assert.Empty(t, engine.Search(SearchParams{Keyword: "i5", MinPrice: price(7000)}))
	assert.Empty(t, engine.Search(SearchParams{Keyword: "i5", MaxPrice: price(5999)}))

	results := engine.Search(SearchParams{Keyword: "i5", MinPrice: price(5000), MaxPrice: price(7000)})
	require.Len(t, results, 1)
	assert.Equal(t, "i5-13400", results[0].Model)

	// Bounds are inclusive.
	results = engine.Search(SearchParams{Keyword: "i5", MinPrice: price(6000), MaxPrice: price(6000)})
	assert.Len(t, results, 1)
}

func TestSearchLimitAndTraversalOrder(t *testing.T) {
	products := make([]domain.Product, 12)
	for i := range products {
		products[i] = domain.Product{
			Index:   fmt.Sprintf("%d", i+1),
			Brand:   "Acme",
			Model:   fmt.Sprintf("widget-%02d", i+1),
			Specs:   []string{},
			Markers: []string{},
			RawText: fmt.Sprintf("Acme widget-%02d $100", i+1),
		}
	}
	store := catalog.New([]domain.Category{{
		CategoryID:   "1",
		CategoryName: "Widgets",
		Subcategories: []domain.Subcategory{
			{Name: "A", Products: products[:6]},
			{Name: "B", Products: products[6:]},
		},
	}})
	engine := NewEngine(store)

	// Default limit is 10.
	results := engine.Search(SearchParams{Keyword: "widget"})
	require.Len(t, results, DefaultSearchLimit)

	// Explicit limit keeps the first N matches in catalog order.
	results = engine.Search(SearchParams{Keyword: "widget", Limit: 5})
	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("widget-%02d", i+1), result.Model)
		assert.Equal(t, "A", result.Subcategory)
	}

	// A limit larger than the match count returns everything.
	results = engine.Search(SearchParams{Keyword: "widget", Limit: 50})
	assert.Len(t, results, 12)
}

func TestSearchCarriesDiscountFields(t *testing.T) {
	engine := NewEngine(testStore())

	results := engine.Search(SearchParams{Keyword: "i7"})
	require.Len(t, results, 1)
	assert.Equal(t, price(12900), results[0].OriginalPrice)
	assert.Equal(t, price(900), results[0].DiscountAmount)
}

func TestGetByModelExactCaseInsensitive(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.GetByModel("I5-13400")
	require.True(t, result.Found)
	assert.Equal(t, "i5-13400", result.Model)
	assert.Equal(t, "處理器 CPU", result.Category)
	assert.Equal(t, "Intel", result.Subcategory)
	require.NotNil(t, result.Product)
	assert.Equal(t, "Intel i5-13400【10核16緒】2.5GHz/20M/UHD730 $6,000", result.Product.RawText)

	// Substrings must not match.
	assert.False(t, engine.GetByModel("i5").Found)
}

func TestGetByModelMissEchoesQuery(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.GetByModel("rtx-9999")
	assert.False(t, result.Found)
	assert.Equal(t, "rtx-9999", result.Model)
	assert.NotEmpty(t, result.Message)
	assert.Nil(t, result.Product)
}

func TestGetByModelIsIdempotent(t *testing.T) {
	engine := NewEngine(testStore())

	first := engine.GetByModel("i5-13400")
	second := engine.GetByModel("i5-13400")
	assert.Equal(t, first, second)
}

func TestGetByModelDuplicateFirstInCatalogOrderWins(t *testing.T) {
	store := catalog.New([]domain.Category{
		{
			CategoryID:   "1",
			CategoryName: "First",
			Subcategories: []domain.Subcategory{{
				Name: "A",
				Products: []domain.Product{
					{Index: "1", Brand: "One", Model: "dupe", RawText: "One dupe $100"},
				},
			}},
		},
		{
			CategoryID:   "2",
			CategoryName: "Second",
			Subcategories: []domain.Subcategory{{
				Name: "B",
				Products: []domain.Product{
					{Index: "1", Brand: "Two", Model: "DUPE", RawText: "Two DUPE $200"},
				},
			}},
		},
	})
	engine := NewEngine(store)

	result := engine.GetByModel("dupe")
	require.True(t, result.Found)
	assert.Equal(t, "First", result.Category)
	assert.Equal(t, "One", result.Product.Brand)
}

func TestListCategories(t *testing.T) {
	engine := NewEngine(testStore())

	overview := engine.ListCategories()
	require.Len(t, overview, 2)

	assert.Equal(t, "4", overview[0].CategoryID)
	assert.Equal(t, "處理器 CPU", overview[0].CategoryName)
	assert.Equal(t, 3, overview[0].Stats.TotalItems)
	require.Len(t, overview[0].Subcategories, 2)
	assert.Equal(t, SubcategorySummary{Name: "Intel", ProductCount: 2}, overview[0].Subcategories[0])
	assert.Equal(t, SubcategorySummary{Name: "AMD", ProductCount: 1}, overview[0].Subcategories[1])

	assert.Equal(t, "6", overview[1].CategoryID)
}

func TestListCategoriesConsistentWithCategoryProducts(t *testing.T) {
	engine := NewEngine(testStore())

	for _, category := range engine.ListCategories() {
		total := 0
		for _, subcategory := range category.Subcategories {
			result := engine.CategoryProducts(CategoryProductsParams{
				CategoryID:      category.CategoryID,
				SubcategoryName: subcategory.Name,
			})
			require.True(t, result.Found)
			assert.Equal(t, subcategory.ProductCount, result.TotalProducts)
			total += subcategory.ProductCount
		}

		all := engine.CategoryProducts(CategoryProductsParams{CategoryID: category.CategoryID})
		require.True(t, all.Found)
		assert.Equal(t, total, all.TotalProducts)
	}
}

func TestCategoryProductsUnknownID(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.CategoryProducts(CategoryProductsParams{CategoryID: "C2"})
	assert.False(t, result.Found)
	assert.Equal(t, "C2", result.CategoryID)
	assert.Contains(t, result.Message, "C2")
	assert.Empty(t, result.Products)
}

func TestCategoryProductsIDIsCaseSensitive(t *testing.T) {
	store := catalog.New([]domain.Category{{
		CategoryID:    "C1",
		CategoryName:  "CPU",
		Subcategories: []domain.Subcategory{{Name: "Intel", Products: []domain.Product{{Model: "i5-13400"}}}},
	}})
	engine := NewEngine(store)

	assert.True(t, engine.CategoryProducts(CategoryProductsParams{CategoryID: "C1"}).Found)
	assert.False(t, engine.CategoryProducts(CategoryProductsParams{CategoryID: "c1"}).Found)
}

func TestCategoryProductsSubcategoryFilter(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.CategoryProducts(CategoryProductsParams{CategoryID: "4", SubcategoryName: "intel"})
	require.True(t, result.Found)
	assert.Equal(t, 2, result.TotalProducts)
	assert.Equal(t, 2, result.Showing)
	require.NotNil(t, result.SubcategoryFilter)
	assert.Equal(t, "Intel", *result.SubcategoryFilter)
	for _, product := range result.Products {
		assert.Equal(t, "Intel", product.Subcategory)
	}
}

func TestCategoryProductsUnknownSubcategory(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.CategoryProducts(CategoryProductsParams{CategoryID: "4", SubcategoryName: "Nvidia"})
	assert.False(t, result.Found)
	assert.Contains(t, result.Message, "Nvidia")
	assert.Contains(t, result.Message, "4")
}

func TestCategoryProductsLimitAndCounts(t *testing.T) {
	engine := NewEngine(testStore())

	result := engine.CategoryProducts(CategoryProductsParams{CategoryID: "4", Limit: 2})
	require.True(t, result.Found)
	assert.Equal(t, 3, result.TotalProducts)
	assert.Equal(t, 2, result.Showing)
	require.Len(t, result.Products, 2)
	// Source order: both Intel products come before the AMD one.
	assert.Equal(t, "i5-13400", result.Products[0].Model)
	assert.Equal(t, "i7-13700", result.Products[1].Model)

	// No filter applied, the echo stays null.
	assert.Nil(t, result.SubcategoryFilter)
}

func TestBoundaryScenario(t *testing.T) {
	store := catalog.New([]domain.Category{{
		CategoryID:   "C1",
		CategoryName: "CPU",
		Subcategories: []domain.Subcategory{{
			Name: "Intel",
			Products: []domain.Product{{
				Brand:   "Intel",
				Model:   "i5-13400",
				Price:   6000,
				RawText: "Intel i5-13400 $6,000",
			}},
		}},
	}})
	engine := NewEngine(store)

	results := engine.Search(SearchParams{Keyword: "i5"})
	require.Len(t, results, 1)
	assert.Equal(t, "i5-13400", results[0].Model)

	assert.True(t, engine.GetByModel("I5-13400").Found)

	listing := engine.CategoryProducts(CategoryProductsParams{CategoryID: "C1", SubcategoryName: "intel"})
	require.True(t, listing.Found)
	assert.Equal(t, 1, listing.TotalProducts)
	assert.Equal(t, 1, listing.Showing)

	assert.False(t, engine.CategoryProducts(CategoryProductsParams{CategoryID: "C2"}).Found)
}

func TestEmptyCatalogNeverFails(t *testing.T) {
	engine := NewEngine(catalog.New(nil))

	assert.Empty(t, engine.Search(SearchParams{Keyword: "i5"}))
	assert.False(t, engine.GetByModel("i5-13400").Found)
	assert.Empty(t, engine.ListCategories())
	assert.False(t, engine.CategoryProducts(CategoryProductsParams{CategoryID: "4"}).Found)
}

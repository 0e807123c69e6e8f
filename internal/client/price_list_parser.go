package client

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"coolpc/catalog/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PriceListParser turns the evaluate.php page into the catalog document
// shape: every <select name=nNN> is a category, every OPTGROUP inside it a
// subcategory, every OPTION a product line (or a group header / supplement).
type PriceListParser struct{}

func NewPriceListParser() *PriceListParser {
	return &PriceListParser{}
}

var selectNameRegex = regexp.MustCompile(`^n(\d+)$`)

// Parse extracts all categories from the price list HTML. Categories parse
// independently, so each runs in its own goroutine; source order is restored
// through indexed writes.
func (p *PriceListParser) Parse(html string) ([]domain.Category, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selects := doc.Find("select")
	parsed := make([]*domain.Category, selects.Length())

	g := new(errgroup.Group)
	selects.Each(func(i int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		matches := selectNameRegex.FindStringSubmatch(name)
		if matches == nil {
			return
		}
		categoryID := matches[1]

		g.Go(func() error {
			parsed[i] = p.parseCategory(sel, categoryID)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(parsed))
	for _, category := range parsed {
		if category != nil {
			categories = append(categories, *category)
		}
	}

	log.Debugf("Parsed price list into %d categories", len(categories))
	return categories, nil
}

// optionEntry is one OPTION in document order, tagged with the OPTGROUP label
// it appeared under (empty for top-level options such as the summary line).
type optionEntry struct {
	text     string
	class    string
	value    string
	group    string
	disabled bool
}

func (p *PriceListParser) parseCategory(sel *goquery.Selection, categoryID string) *domain.Category {
	options := collectOptions(sel)
	if len(options) == 0 {
		return nil
	}

	category := &domain.Category{
		CategoryID:    categoryID,
		CategoryName:  categoryName(categoryID),
		Subcategories: []domain.Subcategory{},
	}

	subIndex := make(map[string]int)
	currentGroup := ""

	for i, option := range options {
		text := option.text

		// The first option is the category summary with the counters.
		if i == 0 && (strings.Contains(text, "共有商品") || option.value == "0") {
			category.Summary = text
			category.Stats = parseCategoryStats(text)
			continue
		}

		// Supplement lines only annotate the product above them.
		if strings.Contains(text, "↪") {
			continue
		}

		if text == "" {
			continue
		}

		// Group headers are often rendered as disabled options, so the
		// header check comes before the disabled skip.
		if isGroupHeader(text) {
			currentGroup = text
			continue
		}
		if option.disabled {
			continue
		}

		product := parseProductLine(strconv.Itoa(i), text, option.class, currentGroup)
		if product == nil {
			continue
		}

		subName := option.group
		if subName == "" {
			subName = "其他"
		}
		idx, ok := subIndex[subName]
		if !ok {
			idx = len(category.Subcategories)
			subIndex[subName] = idx
			category.Subcategories = append(category.Subcategories, domain.Subcategory{
				Name:     subName,
				Products: []domain.Product{},
			})
		}
		category.Subcategories[idx].Products = append(category.Subcategories[idx].Products, *product)
	}

	return category
}

// collectOptions walks the SELECT children in document order. The HTML
// parser already nests OPTIONs under their OPTGROUP, so the label is read
// from the parent node.
func collectOptions(sel *goquery.Selection) []optionEntry {
	var options []optionEntry

	appendOption := func(opt *goquery.Selection, group string) {
		class, _ := opt.Attr("class")
		value, _ := opt.Attr("value")
		_, disabled := opt.Attr("disabled")
		options = append(options, optionEntry{
			text:     strings.TrimSpace(opt.Text()),
			class:    class,
			value:    value,
			group:    group,
			disabled: disabled,
		})
	}

	sel.Children().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "optgroup" {
			label, _ := child.Attr("label")
			child.ChildrenFiltered("option").Each(func(_ int, opt *goquery.Selection) {
				appendOption(opt, strings.TrimSpace(label))
			})
			return
		}
		if goquery.NodeName(child) == "option" {
			appendOption(child, "")
		}
	})

	return options
}

var (
	priceRegex    = regexp.MustCompile(`\$([0-9,]+)`)
	discountRegex = regexp.MustCompile(`\$([0-9,]+)↘\$([0-9,]+)`)
	statsRegexes  = map[string]*regexp.Regexp{
		"total":       regexp.MustCompile(`共有商品\s*(\d+)\s*樣`),
		"hot":         regexp.MustCompile(`熱賣\s*(\d+)`),
		"images":      regexp.MustCompile(`圖片\s*(\d+)`),
		"discussions": regexp.MustCompile(`討論\s*(\d+)`),
		"changes":     regexp.MustCompile(`價格異動\s*(\d+)`),
		"timeLimited": regexp.MustCompile(`限時下殺▼(\d+)`),
	}
)

func parseCategoryStats(summary string) domain.CategoryStats {
	extract := func(key string) int {
		matches := statsRegexes[key].FindStringSubmatch(summary)
		if len(matches) < 2 {
			return 0
		}
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0
		}
		return n
	}

	return domain.CategoryStats{
		TotalItems:      extract("total"),
		HotItems:        extract("hot"),
		WithImages:      extract("images"),
		WithDiscussions: extract("discussions"),
		PriceChanges:    extract("changes"),
		TimeLimited:     extract("timeLimited"),
	}
}

var groupIndicators = []string{"❤", "※", "推薦用於", "系列", "專區", "配件", "周邊"}

// isGroupHeader tells product lines apart from the decorative headers CoolPC
// mixes into the option list. A line with a price or a 【model】 bracket is
// always a product.
func isGroupHeader(text string) bool {
	if strings.Contains(text, "$") && priceRegex.MatchString(text) {
		return false
	}
	if strings.Contains(text, "【") && strings.Contains(text, "】") {
		return false
	}

	for _, indicator := range groupIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}

	// Short lines without spec fragments or a known brand are headers too.
	if utf8.RuneCountInString(text) < 50 {
		hasSpecHint := false
		for _, hint := range []string{"/", "G", "GB", "TB", "Hz", "W"} {
			if strings.Contains(text, hint) {
				hasSpecHint = true
				break
			}
		}
		if !hasSpecHint {
			for _, brand := range []string{"ASUS", "MSI", "Intel", "AMD", "NVIDIA"} {
				if strings.Contains(text, brand) {
					return false
				}
			}
			return true
		}
	}

	return false
}

// parseProductLine extracts the structured product fields from one option
// line. The raw text is always kept so search has a fallback when the
// brand/model heuristics come up empty.
func parseProductLine(index, text, class, group string) *domain.Product {
	if text == "" {
		return nil
	}

	product := &domain.Product{
		Index:   index,
		Group:   group,
		Specs:   []string{},
		Markers: extractMarkers(text, class),
		RawText: text,
	}

	product.Brand, product.Model = extractBrandModel(text)
	product.Specs = extractSpecs(text)

	if matches := priceRegex.FindStringSubmatch(text); matches != nil {
		product.Price = parsePriceNumber(matches[1])
	}

	// A markdown like $1,990↘$1,790 overrides the plain price match: the
	// current price is the one after the arrow.
	if matches := discountRegex.FindStringSubmatch(text); matches != nil {
		original := parsePriceNumber(matches[1])
		current := parsePriceNumber(matches[2])
		amount := original - current
		product.Price = current
		product.OriginalPrice = &original
		product.DiscountAmount = &amount
	}

	return product
}

func parsePriceNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}

func extractMarkers(text, class string) []string {
	markers := []string{}

	if strings.Contains(text, "◆") {
		markers = append(markers, domain.MarkerDiscussion)
	}
	if strings.Contains(text, "★") {
		markers = append(markers, domain.MarkerImage)
	}
	if strings.Contains(class, "r") || strings.Contains(text, "熱賣") {
		markers = append(markers, domain.MarkerHot)
	}
	if strings.Contains(class, "g") || strings.Contains(text, "價格異動") || strings.Contains(text, "↘") {
		markers = append(markers, domain.MarkerPriceChange)
	}
	if strings.Contains(class, "b") {
		markers = append(markers, domain.MarkerHotAndChange)
	}
	if strings.Contains(text, "限時") || strings.Contains(text, "下殺") {
		markers = append(markers, domain.MarkerTimeLimited)
	}
	if strings.Contains(text, "【訂】") {
		markers = append(markers, domain.MarkerPreOrder)
	}
	if strings.Contains(text, "酷幣") {
		markers = append(markers, domain.MarkerCoolCoinDiscount)
	}

	return markers
}

var (
	trailingPriceRegex   = regexp.MustCompile(`\$[0-9,]+.*$`)
	trailingSymbolRegex  = regexp.MustCompile(`[◆★↓→].*`)
	promoPrefixRegex     = regexp.MustCompile(`^\[[^\]]+\]\s*`)
	chineseEnglishRegex  = regexp.MustCompile(`^([\x{4e00}-\x{9fff}]+)\s+([A-Za-z]+)`)
	leadingBrandRegex    = regexp.MustCompile(`^([A-Za-z]+)`)
	bracketContentRegex  = regexp.MustCompile(`【([^】]+)】`)
	bracketSkipFragments = []string{"年保", "保固", "核/", "緒", "GB", "TB", "MHz", "W/", "nm"}
)

// extractBrandModel applies the line-format heuristics: Chinese+English brand
// pairs (威剛 ADATA ...), plain English brands with CPU-specific model
// patterns for AMD/Intel, and finally the 【...】 bracket fallback, skipping
// brackets that hold warranty or spec fragments.
func extractBrandModel(text string) (string, string) {
	clean := trailingPriceRegex.ReplaceAllString(text, "")
	clean = trailingSymbolRegex.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	clean = promoPrefixRegex.ReplaceAllString(clean, "")

	var brand, model string

	if matches := chineseEnglishRegex.FindStringSubmatch(clean); matches != nil {
		brand = matches[1] + " " + matches[2]
		modelRegex := regexp.MustCompile(
			`^[\x{4e00}-\x{9fff}]+\s+` + regexp.QuoteMeta(matches[2]) +
				`\s+([A-Za-z0-9\s\-]+?)(?:\s+\d+(?:GB|TB|G)|/)`)
		if mm := modelRegex.FindStringSubmatch(clean); mm != nil {
			model = strings.TrimSpace(mm[1])
		}
	} else if matches := leadingBrandRegex.FindStringSubmatch(clean); matches != nil {
		brand = matches[1]

		if brand == "AMD" || brand == "Intel" {
			// CPU lines carry the full model before the packaging words,
			// e.g. "AMD R7 7800X3D 代理盒裝" or "Intel i5-14400F【...】".
			cpuRegex := regexp.MustCompile(
				`^` + brand + `\s+([A-Za-z0-9\-X3D]+(?:\s+[A-Za-z0-9\-X3D]+)*?)(?:\s*(?:代理盒裝|盒|含風扇)|(?:\s+MPK)|【)`)
			if mm := cpuRegex.FindStringSubmatch(clean); mm != nil {
				model = strings.TrimSpace(mm[1])
			}
		} else {
			modelRegex := regexp.MustCompile(
				`^` + brand + `\s+([A-Za-z0-9\-]+)\s+(?:\d+(?:GB|TB|G)|/)`)
			if mm := modelRegex.FindStringSubmatch(clean); mm != nil {
				model = mm[1]
			}
		}
	}

	if model == "" {
		for _, bracket := range bracketContentRegex.FindAllStringSubmatch(clean, -1) {
			content := bracket[1]
			skip := false
			for _, fragment := range bracketSkipFragments {
				if strings.Contains(content, fragment) {
					skip = true
					break
				}
			}
			if !skip {
				model = content
				break
			}
		}
	}

	return brand, model
}

var (
	specSectionRegex = regexp.MustCompile(`】([^$]+)\$`)
	leadingWordRegex = regexp.MustCompile(`^[A-Za-z]+\s*`)
)

// extractSpecs takes the fragment between the 【model】 bracket and the price
// and splits it on slashes. Lines without the bracket fall back to splitting
// whatever remains once brand, price and trailing symbols are stripped.
func extractSpecs(text string) []string {
	if matches := specSectionRegex.FindStringSubmatch(text); matches != nil {
		return splitSpecs(matches[1])
	}

	clean := leadingWordRegex.ReplaceAllString(text, "")
	clean = trailingPriceRegex.ReplaceAllString(clean, "")
	clean = trailingSymbolRegex.ReplaceAllString(clean, "")
	if strings.Contains(clean, "/") {
		return splitSpecs(clean)
	}

	return []string{}
}

func splitSpecs(raw string) []string {
	specs := []string{}
	for _, part := range strings.Split(raw, "/") {
		if part = strings.TrimSpace(part); part != "" {
			specs = append(specs, part)
		}
	}
	return specs
}

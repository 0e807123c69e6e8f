package domain

// Promotional markers attached to a product line. The values mirror the
// symbols and CSS classes on the CoolPC price list.
const (
	MarkerDiscussion       = "discussion"           // ◆ has a discussion thread
	MarkerImage            = "image"                // ★ has a photo
	MarkerHot              = "hot"                  // class "r" or 熱賣
	MarkerPriceChange      = "price_change"         // class "g" or ↘
	MarkerHotAndChange     = "hot_and_price_change" // class "b"
	MarkerTimeLimited      = "time_limited"         // 限時 / 下殺
	MarkerPreOrder         = "pre_order"            // 【訂】
	MarkerCoolCoinDiscount = "cool_coin_discount"   // 酷幣 rebate
)

// Product is a single price-list line. RawText keeps the original line so
// keyword search still works when the brand/model extraction came up empty.
type Product struct {
	Index          string   `json:"index"`                     // Source line identifier, opaque
	Group          string   `json:"group,omitempty"`           // Display grouping header above the line
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Specs          []string `json:"specs"`                     // Attribute fragments, source order
	Price          float64  `json:"price"`                     // Current price in TWD
	OriginalPrice  *float64 `json:"original_price,omitempty"`  // Pre-discount price, when marked down
	DiscountAmount *float64 `json:"discount_amount,omitempty"` // OriginalPrice - Price
	Markers        []string `json:"markers"`                   // May be empty, never nil
	RawText        string   `json:"raw_text"`                  // Full original line
}

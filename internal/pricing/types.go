package pricing

import "github.com/scentvault/storefront-backend/pkg/enums"

// MarketPrices are prices observed for the same product at other retailers.
type MarketPrices struct {
	AverageMarketPrice *float64 `json:"average_market_price,omitempty"`
	LowestMarketPrice  *float64 `json:"lowest_market_price,omitempty"`
	HighestMarketPrice *float64 `json:"highest_market_price,omitempty"`
}

// GroupBuy is the product's current group-buy campaign, whatever its status.
type GroupBuy struct {
	ID            string               `json:"id"`
	Status        enums.GroupBuyStatus `json:"status"`
	DiscountPrice *float64             `json:"discount_price,omitempty"`
}

// RawProduct is a catalog row joined with its market prices and group buy.
type RawProduct struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Brand         string        `json:"brand"`
	Price         float64       `json:"price"`
	CostPrice     *float64      `json:"cost_price,omitempty"`
	StockQuantity int           `json:"stock_quantity"`
	ScentProfile  string        `json:"scent_profile"`
	Gender        string        `json:"gender"`
	ImageURL      *string       `json:"image_url,omitempty"`
	MarketPrices  *MarketPrices `json:"price_intelligence,omitempty"`
	GroupBuy      *GroupBuy     `json:"group_buy,omitempty"`
}

// EnrichedProduct is a catalog row with its derived pricing.
type EnrichedProduct struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	ScentProfile   string          `json:"scent_profile"`
	Gender         string          `json:"gender"`
	StockQuantity  int             `json:"stock_quantity"`
	ImageURL       *string         `json:"image_url"`
	BasePrice      float64         `json:"base_price"`
	ReferencePrice float64         `json:"reference_price"`
	BestPrice      float64         `json:"best_price"`
	SavingsAmount  float64         `json:"savings_amount"`
	SavingsPercent int             `json:"savings_percent"`
	MarginAmount   *float64        `json:"margin_amount"`
	MarginPercent  *int            `json:"margin_percent"`
	PriceTier      enums.PriceTier `json:"price_tier"`
	GroupBuyActive bool            `json:"group_buy_active"`
}

// ComboKind distinguishes single recommendations from bundles.
type ComboKind string

const (
	ComboSingle ComboKind = "single"
	ComboPair   ComboKind = "pair"
)

// Combo is a ranked recommendation of one or two products.
type Combo struct {
	Kind                ComboKind `json:"kind"`
	ProductIDs          []string  `json:"product_ids"`
	TotalPrice          float64   `json:"total_price"`
	TotalReferencePrice float64   `json:"total_reference_price"`
	TotalSavings        float64   `json:"total_savings"`
	TotalMargin         float64   `json:"total_margin"`
	Affinity            int       `json:"affinity"`
	Score               float64   `json:"score"`
}

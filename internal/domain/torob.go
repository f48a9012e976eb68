package domain

// Torob API DTOs. Torob prices are in toman; the mapper scales them to rial
// (x10) exactly once at extraction.

// TorobSuggestion is one entry of the suggestion endpoint response, which is
// a bare JSON array.
type TorobSuggestion struct {
	Text string `json:"text"`
}

// TorobSearchResponse is the envelope of /v4/base-product/search/.
type TorobSearchResponse struct {
	Results []TorobSearchItem `json:"results"`
}

// TorobSearchItem is one search hit.
type TorobSearchItem struct {
	RandomKey            string `json:"random_key"`
	Name1                string `json:"name1"`
	Name2                string `json:"name2"`
	Price                int64  `json:"price"`
	ShopText             string `json:"shop_text"`
	WebClientAbsoluteURL string `json:"web_client_absolute_url"`
	ImageURL             string `json:"image_url"`
	StockStatus          string `json:"stock_status"`
}

// TorobDetailResponse is the envelope of /v4/base-product/details/.
type TorobDetailResponse struct {
	Name1                string             `json:"name1"`
	Name2                string             `json:"name2"`
	Price                int64              `json:"price"`
	MinPrice             int64              `json:"min_price"`
	MaxPrice             int64              `json:"max_price"`
	ImageURL             string             `json:"image_url"`
	WebClientAbsoluteURL string             `json:"web_client_absolute_url"`
	SEODescription       string             `json:"seo_description"`
	Availability         *bool              `json:"availability"`
	ProductsInfo         *TorobProductsInfo `json:"products_info"`
}

// TorobProductsInfo wraps the per-shop offer list of a detail payload.
type TorobProductsInfo struct {
	Result []TorobShop `json:"result"`
}

// TorobShop is one shop's offer inside a detail payload.
type TorobShop struct {
	ShopName          string  `json:"shop_name"`
	ShopID            int64   `json:"shop_id"`
	ShopScore         float64 `json:"shop_score"`
	ShopVotesCount    int     `json:"shop_votes_count"`
	Price             int64   `json:"price"`
	PageURL           string  `json:"page_url"`
	Availability      *bool   `json:"availability"`
	IsPriceUnreliable bool    `json:"is_price_unreliable"`
}

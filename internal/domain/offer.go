package domain

// Platform identifiers used across the service
const (
	PlatformDigikala = "digikala"
	PlatformTorob    = "torob"
)

// Per-platform result page caps applied after ranking
const (
	DigikalaPageCap = 5
	TorobPageCap    = 10
)

// Localized fallback strings surfaced to the extension popup.
// The upstream APIs are Persian-language; defaults follow suit.
const (
	UnknownProductTitle   = "محصول نامشخص"
	DefaultDigikalaSeller = "دیجیکالا"
	UnknownSeller         = "نامشخص"
	SellerGradeGood       = "خوب"
	SellerGradeNew        = "جدید"
	SingleSellerNote      = "این محصول تنها از یک فروشنده موجود است"
)

// Neutral defaults applied when a platform omits a trust signal
const (
	DefaultSellerRating  = 4.0
	DefaultProductRating = 4.0
)

// Offer is the canonical normalized unit produced by the platform mappers.
// Prices are integer rials; Torob reports toman and is scaled once at
// extraction time. Price == 0 means "price unknown", never a real value.
type Offer struct {
	ProductID          string  `json:"productId"`
	VariantID          string  `json:"variantId,omitempty"`
	Title              string  `json:"title"`
	Seller             string  `json:"seller"`
	SellerCode         string  `json:"sellerCode,omitempty"`
	SellerCount        int     `json:"sellerCount,omitempty"`
	SellerRating       float64 `json:"sellerRating"`
	SellerGrade        string  `json:"sellerGrade,omitempty"`
	Price              int64   `json:"price"`
	OriginalPrice      int64   `json:"originalPrice"`
	Discount           int     `json:"discount"`
	Rating             float64 `json:"rating"`
	URL                string  `json:"url"`
	Image              string  `json:"image"`
	IsTrusted          bool    `json:"isTrusted"`
	IsOfficial         bool    `json:"isOfficial"`
	IsIncredible       bool    `json:"isIncredible,omitempty"`
	VariantDescription string  `json:"variantDescription,omitempty"`
	Color              string  `json:"color,omitempty"`
	Size               string  `json:"size,omitempty"`
	LeadTime           int     `json:"leadTime,omitempty"`
	Availability       bool    `json:"availability,omitempty"`
	Note               string  `json:"note,omitempty"`
	Rank               int     `json:"rank,omitempty"`
	Platform           string  `json:"platform,omitempty"`
	RelevanceScore     float64 `json:"relevanceScore,omitempty"`
}

// DiscountPercent derives the rounded discount percentage.
// Returns 0 when the original price does not exceed the selling price.
func DiscountPercent(originalPrice, price int64) int {
	if originalPrice <= price || originalPrice <= 0 {
		return 0
	}
	return int(float64(originalPrice-price)/float64(originalPrice)*100 + 0.5)
}

// SearchState tracks per-platform pagination within a popup session.
// Results are append-only; the whole state is replaced on a new query.
type SearchState struct {
	Query   string  `json:"query"`
	Page    int     `json:"page"`
	HasMore bool    `json:"hasMore"`
	Loading bool    `json:"loading"`
	Results []Offer `json:"results"`
}

// PlatformResult captures one platform's outcome independently of the other.
type PlatformResult struct {
	Success bool    `json:"success"`
	Data    []Offer `json:"data"`
	Error   string  `json:"error,omitempty"`
}

// CombinedResult is the fail-soft join of the two-platform fan-out.
type CombinedResult struct {
	Digikala PlatformResult `json:"digikala"`
	Torob    PlatformResult `json:"torob"`
}

// LoadMoreResult is the response shape for incremental pagination requests.
type LoadMoreResult struct {
	Platform string  `json:"platform"`
	Page     int     `json:"page"`
	Data     []Offer `json:"data"`
}

// ProductDetail is the Digikala product page projection.
type ProductDetail struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Discount      int      `json:"discount"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	MainImage     string   `json:"mainImage"`
	Availability  bool     `json:"availability"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
}

// TorobProductDetail is the Torob product page projection including the
// ranked per-shop offers.
type TorobProductDetail struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        int64   `json:"price"`
	Rating       float64 `json:"rating"`
	Image        string  `json:"image"`
	URL          string  `json:"url"`
	Platform     string  `json:"platform"`
	Sellers      []Offer `json:"sellers"`
	Description  string  `json:"description"`
	MinPrice     int64   `json:"min_price"`
	MaxPrice     int64   `json:"max_price"`
	Availability bool    `json:"availability"`
}

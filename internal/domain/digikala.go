package domain

import "encoding/json"

// Digikala API DTOs. The upstream JSON is heavily optional at every level, so
// everything that can be absent is a pointer or a zero-able value, and fields
// that switch between scalar and object shapes stay raw for the mapper to probe.

// DigikalaSearchResponse is the envelope of /v1/search/.
type DigikalaSearchResponse struct {
	Data *DigikalaSearchData `json:"data"`
}

// DigikalaSearchData holds the product list inside the search envelope.
type DigikalaSearchData struct {
	Products []DigikalaProduct `json:"products"`
}

// DigikalaDetailResponse is the envelope of /v2/product/{id}/.
type DigikalaDetailResponse struct {
	Data *DigikalaDetailData `json:"data"`
}

// DigikalaDetailData holds the product inside the detail envelope.
type DigikalaDetailData struct {
	Product *DigikalaProduct `json:"product"`
}

// DigikalaProduct is a product record as served by both the search and the
// detail endpoints. Detail payloads additionally carry the seller-variant
// lists probed by the multi-seller resolution ladder.
type DigikalaProduct struct {
	ID             int64                  `json:"id"`
	TitleFa        string                 `json:"title_fa"`
	TitleEn        string                 `json:"title_en"`
	Rating         *DigikalaProductRating `json:"rating"`
	Brand          *DigikalaLocalizedName `json:"brand"`
	Category       *DigikalaLocalizedName `json:"category"`
	Images         *DigikalaImages        `json:"images"`
	DefaultVariant *DigikalaVariant       `json:"default_variant"`
	Price          *DigikalaPrice         `json:"price"`
	Seller         *DigikalaSeller        `json:"seller"`
	IsAvailable    bool                   `json:"is_available"`
	Review         *DigikalaReview        `json:"review"`
	Specifications []json.RawMessage      `json:"specifications"`

	// Seller-variant lists, tried in this order by the resolution ladder.
	Variants          []DigikalaVariant `json:"variants"`
	VariantsWithPrice []DigikalaVariant `json:"variants_with_price"`
	Sellers           []DigikalaVariant `json:"sellers"`
	AllSellers        []DigikalaVariant `json:"all_sellers"`
}

// DigikalaProductRating carries the product-level quality signal.
type DigikalaProductRating struct {
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// DigikalaLocalizedName is a fa/en titled entity (brand, category).
type DigikalaLocalizedName struct {
	TitleFa string `json:"title_fa"`
	TitleEn string `json:"title_en"`
}

// DigikalaReview holds the editorial description block.
type DigikalaReview struct {
	Description string `json:"description"`
}

// DigikalaPrice is the nested price block of a variant or product.
type DigikalaPrice struct {
	SellingPrice int64 `json:"selling_price"`
	RRPPrice     int64 `json:"rrp_price"`
	IsIncredible bool  `json:"is_incredible"`
}

// DigikalaSeller is a merchant record. Rating and Grade switch between
// scalar and object shapes upstream and are kept raw.
type DigikalaSeller struct {
	ID         int64                     `json:"id"`
	Title      string                    `json:"title"`
	Name       string                    `json:"name"`
	Code       string                    `json:"code"`
	Stars      float64                   `json:"stars"`
	Rating     json.RawMessage           `json:"rating"`
	Grade      json.RawMessage           `json:"grade"`
	Properties *DigikalaSellerProperties `json:"properties"`
	IsTrusted  bool                      `json:"is_trusted"`
	IsOfficial bool                      `json:"is_official"`
}

// DigikalaSellerProperties holds the seller trust flags.
type DigikalaSellerProperties struct {
	IsTrusted  bool `json:"is_trusted"`
	IsOfficial bool `json:"is_official"`
}

// DigikalaVariant is one entry of a seller-variant list. Depending on the
// source list the entry is either a variant wrapping a seller object or the
// seller record itself, so the seller fields are mirrored inline.
type DigikalaVariant struct {
	ID           int64           `json:"id"`
	Status       string          `json:"status"`
	IsAvailable  *bool           `json:"is_available"`
	Price        *DigikalaPrice  `json:"price"`
	SellingPrice int64           `json:"selling_price"`
	RRPPrice     int64           `json:"rrp_price"`
	Seller       *DigikalaSeller `json:"seller"`
	Rate         float64         `json:"rate"`
	LeadTime     int             `json:"lead_time"`
	URL          string          `json:"url"`
	Color        json.RawMessage `json:"color"`
	Size         json.RawMessage `json:"size"`
	Themes       []DigikalaTheme `json:"themes"`
	IsIncredible bool            `json:"is_incredible"`
	Images       *DigikalaImages `json:"images"`

	// Inline seller fields for lists whose entries are sellers, not variants.
	Title      string                    `json:"title"`
	Code       string                    `json:"code"`
	Stars      float64                   `json:"stars"`
	Grade      json.RawMessage           `json:"grade"`
	Properties *DigikalaSellerProperties `json:"properties"`
}

// DigikalaTheme distinguishes variant attributes; type "colored" carries the
// color, type "text" the size.
type DigikalaTheme struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// DigikalaImages is the image block attached to products and variants.
type DigikalaImages struct {
	Main *DigikalaImage       `json:"main"`
	List []DigikalaImageEntry `json:"list"`
}

// DigikalaImage carries candidate URLs in preference order.
type DigikalaImage struct {
	URL []string `json:"url"`
}

// DigikalaImageEntry is one list entry; the URL lives either under a nested
// image object or directly on the entry.
type DigikalaImageEntry struct {
	Image *DigikalaImage `json:"image"`
	URL   []string       `json:"url"`
}

package digikala

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pricefinder/backend/internal/domain"
)

// Mapping is the single boundary where Digikala's optional-laden payloads
// become strict Offers. Every accessor is a fallback chain; nothing here
// returns an error, absent paths become defaults.

const productURLFormat = "https://www.digikala.com/product/dkp-%d/"

// MapSearchProduct converts one search hit into a canonical Offer
func MapSearchProduct(p *domain.DigikalaProduct) domain.Offer {
	price := sellingPrice(p)
	originalPrice := rrpPrice(p)
	if originalPrice == 0 {
		originalPrice = price
	}

	seller := p.Seller
	if p.DefaultVariant != nil && p.DefaultVariant.Seller != nil {
		seller = p.DefaultVariant.Seller
	}

	return domain.Offer{
		ProductID:     strconv.FormatInt(p.ID, 10),
		Title:         ProductTitle(p),
		Seller:        sellerName(seller),
		SellerCode:    sellerCode(seller),
		SellerRating:  sellerRating(seller),
		SellerGrade:   sellerGrade(seller),
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      domain.DiscountPercent(originalPrice, price),
		Rating:        productRating(p),
		URL:           fmt.Sprintf(productURLFormat, p.ID),
		Image:         ProductImage(p),
		IsTrusted:     sellerTrusted(seller),
		IsOfficial:    sellerOfficial(seller),
		Platform:      domain.PlatformDigikala,
	}
}

// VariantUsable reports whether a seller-variant entry is a real offer.
// Entries with an explicit status must be marketable; entries without one
// qualify through availability or a positive price.
func VariantUsable(v *domain.DigikalaVariant) bool {
	if v.Status == "marketable" {
		return true
	}
	if v.IsAvailable != nil && *v.IsAvailable {
		return true
	}
	return v.Status == "" && v.Price != nil && v.Price.SellingPrice > 0
}

// MapVariant converts one seller-variant entry into a canonical Offer.
// Entries from the sellers/all_sellers lists are seller records themselves,
// so the seller is resolved from the nested object first, then inline.
func MapVariant(p *domain.DigikalaProduct, v *domain.DigikalaVariant) domain.Offer {
	price := variantSellingPrice(v)
	originalPrice := variantRRPPrice(v)
	if originalPrice == 0 {
		originalPrice = price
	}

	seller := v.Seller
	if seller == nil {
		seller = inlineSeller(v)
	}

	color := attributeName(v.Color)
	if color == "" {
		color = themeValue(v.Themes, "colored")
	}
	size := attributeName(v.Size)
	if size == "" {
		size = themeValue(v.Themes, "text")
	}

	offerURL := v.URL
	if offerURL == "" {
		offerURL = fmt.Sprintf(productURLFormat, p.ID) + fmt.Sprintf("?seller-view-token=%d", v.ID)
	}

	rating := v.Rate
	if rating == 0 {
		rating = productRating(p)
	}

	isIncredible := v.IsIncredible
	if v.Price != nil && v.Price.IsIncredible {
		isIncredible = true
	}

	return domain.Offer{
		ProductID:          strconv.FormatInt(p.ID, 10),
		VariantID:          strconv.FormatInt(v.ID, 10),
		Title:              ProductTitle(p),
		Seller:             sellerName(seller),
		SellerCode:         sellerCode(seller),
		SellerRating:       sellerRating(seller),
		SellerGrade:        sellerGrade(seller),
		Price:              price,
		OriginalPrice:      originalPrice,
		Discount:           domain.DiscountPercent(originalPrice, price),
		Rating:             rating,
		URL:                offerURL,
		Image:              ProductImage(p),
		IsTrusted:          sellerTrusted(seller),
		IsOfficial:         sellerOfficial(seller),
		IsIncredible:       isIncredible,
		LeadTime:           v.LeadTime,
		Availability:       v.IsAvailable == nil || *v.IsAvailable,
		VariantDescription: variantDescription(color, size),
		Color:              color,
		Size:               size,
		Platform:           domain.PlatformDigikala,
	}
}

// MapDefaultVariant builds the synthetic single-seller Offer used when no
// multi-seller source yields more than one entry. Returns false when the
// product has no default variant at all.
func MapDefaultVariant(p *domain.DigikalaProduct) (domain.Offer, bool) {
	dv := p.DefaultVariant
	if dv == nil {
		return domain.Offer{}, false
	}

	offer := MapVariant(p, dv)
	offer.URL = fmt.Sprintf(productURLFormat, p.ID)
	offer.Note = domain.SingleSellerNote
	return offer, true
}

// MapProductDetail projects a detail payload for the product page view
func MapProductDetail(p *domain.DigikalaProduct, productID string) *domain.ProductDetail {
	price := sellingPrice(p)
	originalPrice := rrpPrice(p)
	if originalPrice == 0 {
		originalPrice = price
	}

	rating := 0.0
	reviewCount := 0
	if p.Rating != nil {
		rating = p.Rating.AverageRating
		reviewCount = p.Rating.Count
	}

	availability := p.IsAvailable
	if p.DefaultVariant != nil && p.DefaultVariant.IsAvailable != nil {
		availability = *p.DefaultVariant.IsAvailable
	}

	description := ""
	if p.Review != nil {
		description = p.Review.Description
	}

	return &domain.ProductDetail{
		ID:            productID,
		Title:         ProductTitle(p),
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      domain.DiscountPercent(originalPrice, price),
		Rating:        rating,
		ReviewCount:   reviewCount,
		Brand:         localizedName(p.Brand),
		Category:      localizedName(p.Category),
		Images:        imageList(p),
		MainImage:     ProductImage(p),
		Availability:  availability,
		URL:           fmt.Sprintf(productURLFormat, p.ID),
		Description:   description,
	}
}

// ProductImage picks the best available image URL from the candidate
// locations in priority order. The first absolute http URL wins.
func ProductImage(p *domain.DigikalaProduct) string {
	for _, candidate := range imageCandidates(p) {
		if strings.HasPrefix(candidate, "http") {
			return candidate
		}
	}
	return ""
}

// imageCandidates lists the known image locations. Order is the contract:
// main urls, list entries (nested image first, then direct), then the
// default variant's own images.
func imageCandidates(p *domain.DigikalaProduct) []string {
	var candidates []string

	if p.Images != nil {
		candidates = append(candidates, mainURL(p.Images, 0), mainURL(p.Images, 1))
		candidates = append(candidates,
			listImageURL(p.Images, 0, 0),
			listImageURL(p.Images, 0, 1),
			listDirectURL(p.Images, 0, 0),
			listImageURL(p.Images, 1, 0),
		)
	}

	if p.DefaultVariant != nil && p.DefaultVariant.Images != nil {
		candidates = append(candidates,
			mainURL(p.DefaultVariant.Images, 0),
			listImageURL(p.DefaultVariant.Images, 0, 0),
		)
	}

	return candidates
}

func mainURL(images *domain.DigikalaImages, idx int) string {
	if images.Main != nil && idx < len(images.Main.URL) {
		return images.Main.URL[idx]
	}
	return ""
}

func listImageURL(images *domain.DigikalaImages, entry, idx int) string {
	if entry < len(images.List) && images.List[entry].Image != nil && idx < len(images.List[entry].Image.URL) {
		return images.List[entry].Image.URL[idx]
	}
	return ""
}

func listDirectURL(images *domain.DigikalaImages, entry, idx int) string {
	if entry < len(images.List) && idx < len(images.List[entry].URL) {
		return images.List[entry].URL[idx]
	}
	return ""
}

// imageList flattens the detail payload's image list for the product view
func imageList(p *domain.DigikalaProduct) []string {
	var urls []string
	if p.Images == nil {
		return urls
	}
	for _, entry := range p.Images.List {
		if entry.Image != nil && len(entry.Image.URL) > 0 {
			urls = append(urls, entry.Image.URL[0])
		} else if len(entry.URL) > 0 {
			urls = append(urls, entry.URL[0])
		}
	}
	return urls
}

func ProductTitle(p *domain.DigikalaProduct) string {
	if p.TitleFa != "" {
		return p.TitleFa
	}
	if p.TitleEn != "" {
		return p.TitleEn
	}
	return domain.UnknownProductTitle
}

func productRating(p *domain.DigikalaProduct) float64 {
	if p.Rating != nil && p.Rating.AverageRating > 0 {
		return p.Rating.AverageRating
	}
	return domain.DefaultProductRating
}

func sellingPrice(p *domain.DigikalaProduct) int64 {
	if p.DefaultVariant != nil && p.DefaultVariant.Price != nil && p.DefaultVariant.Price.SellingPrice > 0 {
		return p.DefaultVariant.Price.SellingPrice
	}
	if p.Price != nil {
		return p.Price.SellingPrice
	}
	return 0
}

func rrpPrice(p *domain.DigikalaProduct) int64 {
	if p.DefaultVariant != nil && p.DefaultVariant.Price != nil && p.DefaultVariant.Price.RRPPrice > 0 {
		return p.DefaultVariant.Price.RRPPrice
	}
	if p.Price != nil {
		return p.Price.RRPPrice
	}
	return 0
}

func variantSellingPrice(v *domain.DigikalaVariant) int64 {
	if v.Price != nil && v.Price.SellingPrice > 0 {
		return v.Price.SellingPrice
	}
	return v.SellingPrice
}

func variantRRPPrice(v *domain.DigikalaVariant) int64 {
	if v.Price != nil && v.Price.RRPPrice > 0 {
		return v.Price.RRPPrice
	}
	return v.RRPPrice
}

// inlineSeller lifts a seller-shaped list entry into a seller record
func inlineSeller(v *domain.DigikalaVariant) *domain.DigikalaSeller {
	return &domain.DigikalaSeller{
		Title:      v.Title,
		Code:       v.Code,
		Stars:      v.Stars,
		Grade:      v.Grade,
		Properties: v.Properties,
	}
}

func sellerName(s *domain.DigikalaSeller) string {
	if s != nil {
		if s.Title != "" {
			return s.Title
		}
		if s.Name != "" {
			return s.Name
		}
	}
	return domain.DefaultDigikalaSeller
}

func sellerCode(s *domain.DigikalaSeller) string {
	if s == nil {
		return ""
	}
	return s.Code
}

// sellerRating resolves stars, a nested total_rate object, or a bare number
func sellerRating(s *domain.DigikalaSeller) float64 {
	if s == nil {
		return domain.DefaultSellerRating
	}
	if s.Stars > 0 {
		return s.Stars
	}
	if len(s.Rating) > 0 {
		var nested struct {
			TotalRate float64 `json:"total_rate"`
		}
		if err := json.Unmarshal(s.Rating, &nested); err == nil && nested.TotalRate > 0 {
			return nested.TotalRate
		}
		var scalar float64
		if err := json.Unmarshal(s.Rating, &scalar); err == nil && scalar > 0 {
			return scalar
		}
	}
	return domain.DefaultSellerRating
}

// sellerGrade resolves a grade object's label/title or a bare string
func sellerGrade(s *domain.DigikalaSeller) string {
	if s != nil && len(s.Grade) > 0 {
		var nested struct {
			Label string `json:"label"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(s.Grade, &nested); err == nil {
			if nested.Label != "" {
				return nested.Label
			}
			if nested.Title != "" {
				return nested.Title
			}
		}
		var scalar string
		if err := json.Unmarshal(s.Grade, &scalar); err == nil && scalar != "" {
			return scalar
		}
	}
	return domain.SellerGradeGood
}

func sellerTrusted(s *domain.DigikalaSeller) bool {
	if s == nil {
		return false
	}
	if s.Properties != nil && s.Properties.IsTrusted {
		return true
	}
	return s.IsTrusted
}

func sellerOfficial(s *domain.DigikalaSeller) bool {
	if s == nil {
		return false
	}
	if s.Properties != nil && s.Properties.IsOfficial {
		return true
	}
	return s.IsOfficial
}

// attributeName resolves a value served either as a bare string or as an
// object carrying title/name variants
func attributeName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return scalar
	}
	var nested struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.Title != "" {
			return nested.Title
		}
		return nested.Name
	}
	return ""
}

func themeValue(themes []domain.DigikalaTheme, themeType string) string {
	for _, t := range themes {
		if t.Type == themeType {
			return attributeName(t.Value)
		}
	}
	return ""
}

func variantDescription(color, size string) string {
	switch {
	case color != "" && size != "":
		return color + " - " + size
	case color != "":
		return color
	default:
		return size
	}
}

func localizedName(n *domain.DigikalaLocalizedName) string {
	if n == nil {
		return ""
	}
	if n.TitleFa != "" {
		return n.TitleFa
	}
	return n.TitleEn
}

package torob

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pricefinder/backend/internal/domain"
)

// tomanToRial is the unit conversion applied exactly once at extraction.
// Torob reports prices in toman; the canonical unit is rial.
const tomanToRial = 10

const webBaseURL = "https://torob.com"

var digitsRegex = regexp.MustCompile(`\d+`)

// shop_text boilerplate stripped before the remainder is used as a seller name
var shopTextNoise = []string{"در ", " فروشگاه", "فروشگاه"}

// MapSearchItem converts one search hit into a canonical Offer
func MapSearchItem(item *domain.TorobSearchItem) domain.Offer {
	price := item.Price * tomanToRial

	return domain.Offer{
		ProductID:     item.RandomKey,
		Title:         itemTitle(item.Name1, item.Name2),
		Seller:        sellerFromShopText(item.ShopText),
		SellerCount:   sellerCount(item.ShopText),
		SellerRating:  domain.DefaultSellerRating,
		Price:         price,
		OriginalPrice: price,
		Discount:      0,
		Rating:        domain.DefaultProductRating,
		URL:           webBaseURL + item.WebClientAbsoluteURL,
		Image:         item.ImageURL,
		Platform:      domain.PlatformTorob,
	}
}

// ShopUsable reports whether a detail-payload shop entry is a real offer
func ShopUsable(s *domain.TorobShop) bool {
	if s.IsPriceUnreliable {
		return false
	}
	return s.Availability == nil || *s.Availability
}

// MapShop converts one detail-payload shop entry into a canonical Offer
func MapShop(detail *domain.TorobDetailResponse, s *domain.TorobShop, productKey string, rank int) domain.Offer {
	price := s.Price * tomanToRial

	grade := domain.SellerGradeNew
	if s.ShopVotesCount > 0 {
		grade = domain.SellerGradeGood
	}

	sellerRating := s.ShopScore
	if sellerRating == 0 {
		sellerRating = domain.DefaultSellerRating
	}

	seller := s.ShopName
	if seller == "" {
		seller = domain.UnknownSeller
	}

	offerURL := s.PageURL
	if offerURL == "" {
		offerURL = webBaseURL + detail.WebClientAbsoluteURL
	}

	return domain.Offer{
		ProductID:     productKey,
		Title:         itemTitle(detail.Name1, detail.Name2),
		Seller:        seller,
		SellerCode:    strconv.FormatInt(s.ShopID, 10),
		Rank:          rank,
		SellerRating:  sellerRating,
		SellerGrade:   grade,
		Price:         price,
		OriginalPrice: price,
		Rating:        domain.DefaultProductRating,
		URL:           offerURL,
		Image:         detail.ImageURL,
		Availability:  s.Availability == nil || *s.Availability,
		Platform:      domain.PlatformTorob,
	}
}

// MapProductDetail projects a detail payload for the product page view.
// Sellers are expected to be filtered and ranked by the caller.
func MapProductDetail(detail *domain.TorobDetailResponse, productKey string, sellers []domain.Offer) *domain.TorobProductDetail {
	return &domain.TorobProductDetail{
		ID:           productKey,
		Title:        itemTitle(detail.Name1, detail.Name2),
		Price:        detail.Price * tomanToRial,
		Rating:       domain.DefaultProductRating,
		Image:        detail.ImageURL,
		URL:          webBaseURL + detail.WebClientAbsoluteURL,
		Platform:     domain.PlatformTorob,
		Sellers:      sellers,
		Description:  detail.SEODescription,
		MinPrice:     detail.MinPrice * tomanToRial,
		MaxPrice:     detail.MaxPrice * tomanToRial,
		Availability: detail.Availability == nil || *detail.Availability,
	}
}

func itemTitle(name1, name2 string) string {
	if name1 != "" {
		return name1
	}
	if name2 != "" {
		return name2
	}
	return domain.UnknownProductTitle
}

// sellerFromShopText strips boilerplate from the shop_text blurb. A purely
// numeric remainder is a shop count, not a name, and is rewritten into a
// descriptive phrase.
func sellerFromShopText(shopText string) string {
	cleaned := shopText
	for _, noise := range shopTextNoise {
		cleaned = strings.ReplaceAll(cleaned, noise, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return domain.UnknownSeller
	}
	if isDigits(cleaned) {
		return cleaned + " عدد فروشنده"
	}
	return cleaned
}

// sellerCount extracts the shop count hinted in shop_text, defaulting to 1
func sellerCount(shopText string) int {
	match := digitsRegex.FindString(shopText)
	if match == "" {
		return 1
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 1
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

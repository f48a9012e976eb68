package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pricefinder/backend/internal/domain"
	"github.com/pricefinder/backend/internal/infrastructure/digikala"
	"github.com/pricefinder/backend/internal/infrastructure/torob"
)

// sameProductThreshold is the title-similarity floor for accepting a search
// candidate as another seller of the same product
const sameProductThreshold = 0.7

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ProductService serves product detail views and resolves the multi-seller
// offer list for a product.
type ProductService struct {
	digikalaClient domain.DigikalaClient
	torobClient    domain.TorobClient
	search         *SearchService
	cache          domain.CacheRepository
	cacheTTL       time.Duration
	debug          bool
}

// NewProductService creates a product service with its dependencies
func NewProductService(
	digikalaClient domain.DigikalaClient,
	torobClient domain.TorobClient,
	search *SearchService,
	cache domain.CacheRepository,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &ProductService{
		digikalaClient: digikalaClient,
		torobClient:    torobClient,
		search:         search,
		cache:          cache,
		cacheTTL:       cacheTTL,
		debug:          config.EnableDebugLogging,
	}
}

// GetDigikalaProduct fetches and projects a Digikala product page
func (s *ProductService) GetDigikalaProduct(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := "product:" + domain.PlatformDigikala + ":" + productID
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, cacheKey); err == nil {
			if detail, ok := value.(*domain.ProductDetail); ok {
				return detail, nil
			}
		}
	}

	product, err := s.digikalaClient.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	detail := digikala.MapProductDetail(product, productID)
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, detail, s.cacheTTL)
	}
	return detail, nil
}

// ResolveDigikalaSellers builds the multi-seller comparison for a product.
// Sources are tried strictly top-down and the ladder stops at the first
// rung producing more than one usable offer:
//
//	(a) seller-variant lists embedded in the detail payload
//	(b) a fresh title search filtered by product identity, re-scored
//	(c) a synthetic single offer from the default variant
func (s *ProductService) ResolveDigikalaSellers(ctx context.Context, productID string) ([]domain.Offer, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.digikalaClient.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if offers := s.sellersFromVariants(product); len(offers) > 1 {
		return offers, nil
	}

	if offers := s.sellersFromSearch(ctx, product); len(offers) > 1 {
		return offers, nil
	}

	if offer, ok := digikala.MapDefaultVariant(product); ok {
		return []domain.Offer{offer}, nil
	}

	return []domain.Offer{}, nil
}

// sellersFromVariants maps the first embedded variant list holding more
// than one entry into deduplicated, price-ranked offers
func (s *ProductService) sellersFromVariants(product *domain.DigikalaProduct) []domain.Offer {
	variants := firstVariantList(product)
	if len(variants) <= 1 {
		return nil
	}

	offers := make([]domain.Offer, 0, len(variants))
	for i := range variants {
		if !digikala.VariantUsable(&variants[i]) {
			continue
		}
		offers = append(offers, digikala.MapVariant(product, &variants[i]))
	}

	offers = DedupSellers(offers)
	SortByPrice(offers)

	if s.debug {
		log.Printf("[SELLERS] variant lists yielded %d offers", len(offers))
	}
	return offers
}

// sellersFromSearch finds other sellers through a keyword search on the
// product's own title, filtered by title identity and re-scored against it
func (s *ProductService) sellersFromSearch(ctx context.Context, product *domain.DigikalaProduct) []domain.Offer {
	title := digikala.ProductTitle(product)
	if title == domain.UnknownProductTitle {
		return nil
	}

	results, err := s.search.SearchDigikala(ctx, title, 1)
	if err != nil {
		if s.debug {
			log.Printf("[SELLERS] title search fallback failed: %v", err)
		}
		return nil
	}

	productID := fmt.Sprintf("%d", product.ID)
	matched := MatchSameProduct(title, productID, results, sameProductThreshold)
	ScoreOffers(matched, title)
	SortByRelevance(matched)

	if s.debug {
		log.Printf("[SELLERS] title search matched %d of %d results", len(matched), len(results))
	}
	return matched
}

// firstVariantList returns the first seller-variant source holding more
// than one entry. The probe order is part of the contract.
func firstVariantList(product *domain.DigikalaProduct) []domain.DigikalaVariant {
	sources := [][]domain.DigikalaVariant{
		product.Variants,
		product.VariantsWithPrice,
		product.Sellers,
		product.AllSellers,
	}
	for _, source := range sources {
		if len(source) > 1 {
			return source
		}
	}
	return nil
}

// GetTorobProduct fetches a Torob product page with its ranked seller list.
// Unreliable-price and unavailable shops are dropped before ranking.
func (s *ProductService) GetTorobProduct(ctx context.Context, productKey string) (*domain.TorobProductDetail, error) {
	if productKey == "" {
		return nil, domain.ErrInvalidRequest
	}

	detail, err := s.torobClient.GetProduct(ctx, productKey)
	if err != nil {
		return nil, err
	}

	var shops []domain.TorobShop
	if detail.ProductsInfo != nil {
		shops = detail.ProductsInfo.Result
	}

	sellers := make([]domain.Offer, 0, len(shops))
	for i := range shops {
		if !torob.ShopUsable(&shops[i]) {
			continue
		}
		sellers = append(sellers, torob.MapShop(detail, &shops[i], productKey, i+1))
	}
	SortByPrice(sellers)

	return torob.MapProductDetail(detail, productKey, sellers), nil
}

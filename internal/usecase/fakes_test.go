package usecase

import (
	"context"
	"sync"

	"github.com/pricefinder/backend/internal/domain"
)

// fakeDigikalaClient implements domain.DigikalaClient for service tests
type fakeDigikalaClient struct {
	mu           sync.Mutex
	searchFn     func(query string, page int) (*domain.DigikalaSearchResponse, error)
	getProductFn func(productID string) (*domain.DigikalaProduct, error)
	searchCalls  int
	searchPages  []int
	productCalls int
}

func (f *fakeDigikalaClient) Search(_ context.Context, query string, page int) (*domain.DigikalaSearchResponse, error) {
	f.mu.Lock()
	f.searchCalls++
	f.searchPages = append(f.searchPages, page)
	f.mu.Unlock()

	if f.searchFn == nil {
		return &domain.DigikalaSearchResponse{Data: &domain.DigikalaSearchData{}}, nil
	}
	return f.searchFn(query, page)
}

func (f *fakeDigikalaClient) GetProduct(_ context.Context, productID string) (*domain.DigikalaProduct, error) {
	f.mu.Lock()
	f.productCalls++
	f.mu.Unlock()

	if f.getProductFn == nil {
		return nil, domain.ErrProductNotFound
	}
	return f.getProductFn(productID)
}

// fakeTorobClient implements domain.TorobClient for service tests
type fakeTorobClient struct {
	mu            sync.Mutex
	suggestFn     func(query string) (string, error)
	searchFn      func(query string, page int) (*domain.TorobSearchResponse, error)
	getProductFn  func(productKey string) (*domain.TorobDetailResponse, error)
	searchCalls   int
	searchQueries []string
}

func (f *fakeTorobClient) Suggest(_ context.Context, query string) (string, error) {
	if f.suggestFn == nil {
		return query, nil
	}
	return f.suggestFn(query)
}

func (f *fakeTorobClient) Search(_ context.Context, query string, page int) (*domain.TorobSearchResponse, error) {
	f.mu.Lock()
	f.searchCalls++
	f.searchQueries = append(f.searchQueries, query)
	f.mu.Unlock()

	if f.searchFn == nil {
		return &domain.TorobSearchResponse{}, nil
	}
	return f.searchFn(query, page)
}

func (f *fakeTorobClient) GetProduct(_ context.Context, productKey string) (*domain.TorobDetailResponse, error) {
	if f.getProductFn == nil {
		return nil, domain.ErrProductNotFound
	}
	return f.getProductFn(productKey)
}

// digikalaSearchPage builds a search response with one product per price
func digikalaSearchPage(prices ...int64) *domain.DigikalaSearchResponse {
	products := make([]domain.DigikalaProduct, len(prices))
	for i, price := range prices {
		products[i] = domain.DigikalaProduct{
			ID:      int64(1000 + i),
			TitleFa: "گوشی موبایل سامسونگ",
			Price:   &domain.DigikalaPrice{SellingPrice: price},
		}
	}
	return &domain.DigikalaSearchResponse{
		Data: &domain.DigikalaSearchData{Products: products},
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pricefinder/backend/internal/domain"
	"github.com/pricefinder/backend/internal/infrastructure/cache"
)

func newTestSearchService(dk *fakeDigikalaClient, tb *fakeTorobClient) *SearchService {
	return NewSearchService(dk, tb, cache.NewMemoryCache(), SearchServiceConfig{})
}

func TestSearchService_SearchDigikala(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := newTestSearchService(&fakeDigikalaClient{}, &fakeTorobClient{})
		if _, err := svc.SearchDigikala(ctx, "", 1); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("SearchDigikala(\"\") error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("maps, ranks and caps the page", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return digikalaSearchPage(7_000_000, 3_000_000, 0, 5_000_000, 1_000_000, 6_000_000, 2_000_000), nil
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		offers, err := svc.SearchDigikala(ctx, "samsung", 1)
		if err != nil {
			t.Fatalf("SearchDigikala() error = %v", err)
		}
		if len(offers) != domain.DigikalaPageCap {
			t.Fatalf("len(offers) = %d, want %d", len(offers), domain.DigikalaPageCap)
		}
		for i := 1; i < len(offers); i++ {
			if offers[i].Price < offers[i-1].Price {
				t.Errorf("offers not price-ascending: %d before %d", offers[i-1].Price, offers[i].Price)
			}
		}
		if offers[0].Price != 1_000_000 {
			t.Errorf("offers[0].Price = %d, want cheapest first", offers[0].Price)
		}
		if offers[0].Platform != domain.PlatformDigikala {
			t.Errorf("Platform = %q, want %q", offers[0].Platform, domain.PlatformDigikala)
		}
	})

	t.Run("retries once before surfacing the failure", func(t *testing.T) {
		dk := &fakeDigikalaClient{}
		dk.searchFn = func(string, int) (*domain.DigikalaSearchResponse, error) {
			if dk.searchCalls == 1 {
				return nil, errors.New("timeout")
			}
			return digikalaSearchPage(2_000_000), nil
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		offers, err := svc.SearchDigikala(ctx, "samsung", 1)
		if err != nil {
			t.Fatalf("SearchDigikala() error = %v, want retry to recover", err)
		}
		if dk.searchCalls != 2 {
			t.Errorf("searchCalls = %d, want 2", dk.searchCalls)
		}
		if len(offers) != 1 {
			t.Errorf("len(offers) = %d, want 1", len(offers))
		}
	})

	t.Run("both attempts failing yields a platform error", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return nil, errors.New("timeout")
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		_, err := svc.SearchDigikala(ctx, "samsung", 1)
		if !errors.Is(err, domain.ErrPlatformUnavailable) {
			t.Errorf("SearchDigikala() error = %v, want ErrPlatformUnavailable", err)
		}
		if dk.searchCalls != 2 {
			t.Errorf("searchCalls = %d, want 2", dk.searchCalls)
		}
	})

	t.Run("second identical request is served from cache", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return digikalaSearchPage(2_000_000), nil
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		if _, err := svc.SearchDigikala(ctx, "samsung", 1); err != nil {
			t.Fatalf("first SearchDigikala() error = %v", err)
		}
		if _, err := svc.SearchDigikala(ctx, "samsung", 1); err != nil {
			t.Fatalf("second SearchDigikala() error = %v", err)
		}
		if dk.searchCalls != 1 {
			t.Errorf("searchCalls = %d, want 1 with the page cached", dk.searchCalls)
		}
	})
}

func TestSearchService_SearchTorob(t *testing.T) {
	ctx := context.Background()

	t.Run("converts toman to rial", func(t *testing.T) {
		tb := &fakeTorobClient{
			searchFn: func(string, int) (*domain.TorobSearchResponse, error) {
				return &domain.TorobSearchResponse{Results: []domain.TorobSearchItem{
					{RandomKey: "abc", Name1: "گوشی سامسونگ", Price: 150000, ShopText: "در 5 فروشگاه"},
				}}, nil
			},
		}
		svc := newTestSearchService(&fakeDigikalaClient{}, tb)

		offers, err := svc.SearchTorob(ctx, "samsung", 1)
		if err != nil {
			t.Fatalf("SearchTorob() error = %v", err)
		}
		if len(offers) != 1 {
			t.Fatalf("len(offers) = %d, want 1", len(offers))
		}
		if offers[0].Price != 1500000 {
			t.Errorf("Price = %d, want 1500000 rials", offers[0].Price)
		}
	})

	t.Run("searches with the refined suggestion", func(t *testing.T) {
		tb := &fakeTorobClient{
			suggestFn: func(string) (string, error) {
				return "گوشی سامسونگ galaxy a54", nil
			},
		}
		svc := newTestSearchService(&fakeDigikalaClient{}, tb)

		if _, err := svc.SearchTorob(ctx, "galaxy a54", 1); err != nil {
			t.Fatalf("SearchTorob() error = %v", err)
		}
		if len(tb.searchQueries) != 1 || tb.searchQueries[0] != "گوشی سامسونگ galaxy a54" {
			t.Errorf("search queries = %v, want the refined suggestion", tb.searchQueries)
		}
	})

	t.Run("falls back to the raw query when suggestion fails", func(t *testing.T) {
		tb := &fakeTorobClient{
			suggestFn: func(string) (string, error) {
				return "", errors.New("suggestion down")
			},
		}
		svc := newTestSearchService(&fakeDigikalaClient{}, tb)

		if _, err := svc.SearchTorob(ctx, "galaxy a54", 1); err != nil {
			t.Fatalf("SearchTorob() error = %v", err)
		}
		if len(tb.searchQueries) != 1 || tb.searchQueries[0] != "galaxy a54" {
			t.Errorf("search queries = %v, want the raw query", tb.searchQueries)
		}
	})

	t.Run("caps the page at ten offers", func(t *testing.T) {
		tb := &fakeTorobClient{
			searchFn: func(string, int) (*domain.TorobSearchResponse, error) {
				items := make([]domain.TorobSearchItem, 24)
				for i := range items {
					items[i] = domain.TorobSearchItem{RandomKey: "k", Name1: "x", Price: int64(i + 1)}
				}
				return &domain.TorobSearchResponse{Results: items}, nil
			},
		}
		svc := newTestSearchService(&fakeDigikalaClient{}, tb)

		offers, err := svc.SearchTorob(ctx, "samsung", 1)
		if err != nil {
			t.Fatalf("SearchTorob() error = %v", err)
		}
		if len(offers) != domain.TorobPageCap {
			t.Errorf("len(offers) = %d, want %d", len(offers), domain.TorobPageCap)
		}
	})
}

func TestSearchService_SearchBoth(t *testing.T) {
	ctx := context.Background()

	t.Run("one platform failing never hides the other", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return nil, errors.New("upstream down")
			},
		}
		tb := &fakeTorobClient{
			searchFn: func(string, int) (*domain.TorobSearchResponse, error) {
				return &domain.TorobSearchResponse{Results: []domain.TorobSearchItem{
					{RandomKey: "abc", Name1: "گوشی", Price: 100},
				}}, nil
			},
		}
		svc := newTestSearchService(dk, tb)

		combined, err := svc.SearchBoth(ctx, "samsung", 1, 1)
		if err != nil {
			t.Fatalf("SearchBoth() error = %v", err)
		}
		if combined.Digikala.Success {
			t.Error("Digikala.Success = true, want false")
		}
		if combined.Digikala.Error == "" {
			t.Error("Digikala.Error empty, want the failure message")
		}
		if combined.Digikala.Data == nil {
			t.Error("Digikala.Data = nil, want empty slice for JSON stability")
		}
		if !combined.Torob.Success || len(combined.Torob.Data) != 1 {
			t.Errorf("Torob result = %+v, want one successful offer", combined.Torob)
		}
	})

	t.Run("seeds the pagination session", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return digikalaSearchPage(1, 2, 3, 4, 5), nil
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		if _, err := svc.SearchBoth(ctx, "samsung", 1, 1); err != nil {
			t.Fatalf("SearchBoth() error = %v", err)
		}

		state, ok := svc.SessionState(domain.PlatformDigikala)
		if !ok {
			t.Fatal("no digikala session state after SearchBoth")
		}
		if state.Page != 1 || !state.HasMore {
			t.Errorf("digikala state = %+v, want page 1 with more available after a full page", state)
		}

		state, _ = svc.SessionState(domain.PlatformTorob)
		if state.HasMore {
			t.Errorf("torob state = %+v, empty first page should exhaust", state)
		}
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := newTestSearchService(&fakeDigikalaClient{}, &fakeTorobClient{})
		if _, err := svc.SearchBoth(ctx, "", 1, 1); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("SearchBoth(\"\") error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestSearchService_LoadMore(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown platform is rejected", func(t *testing.T) {
		svc := newTestSearchService(&fakeDigikalaClient{}, &fakeTorobClient{})
		if _, err := svc.LoadMore(ctx, "samsung", "amazon", 0); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("LoadMore() error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("advances the session to the next page", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return digikalaSearchPage(1, 2, 3, 4, 5), nil
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		if _, err := svc.SearchBoth(ctx, "samsung", 1, 1); err != nil {
			t.Fatalf("SearchBoth() error = %v", err)
		}

		result, err := svc.LoadMore(ctx, "samsung", domain.PlatformDigikala, 0)
		if err != nil {
			t.Fatalf("LoadMore() error = %v", err)
		}
		if result.Page != 2 {
			t.Errorf("result.Page = %d, want 2", result.Page)
		}
		if len(result.Data) != domain.DigikalaPageCap {
			t.Errorf("len(result.Data) = %d, want %d", len(result.Data), domain.DigikalaPageCap)
		}

		state, _ := svc.SessionState(domain.PlatformDigikala)
		if state.Page != 2 || !state.HasMore {
			t.Errorf("session state = %+v, want page 2 with more available", state)
		}
		if len(state.Results) != 2*domain.DigikalaPageCap {
			t.Errorf("session Results len = %d, want both pages accumulated", len(state.Results))
		}
	})

	t.Run("no session and no explicit page returns an empty page", func(t *testing.T) {
		svc := newTestSearchService(&fakeDigikalaClient{}, &fakeTorobClient{})

		result, err := svc.LoadMore(ctx, "never-searched", domain.PlatformTorob, 0)
		if err != nil {
			t.Fatalf("LoadMore() error = %v", err)
		}
		if len(result.Data) != 0 {
			t.Errorf("len(result.Data) = %d, want 0", len(result.Data))
		}
	})

	t.Run("explicit page bypasses the session guard", func(t *testing.T) {
		dk := &fakeDigikalaClient{
			searchFn: func(string, int) (*domain.DigikalaSearchResponse, error) {
				return digikalaSearchPage(1_000_000), nil
			},
		}
		svc := newTestSearchService(dk, &fakeTorobClient{})

		result, err := svc.LoadMore(ctx, "samsung", domain.PlatformDigikala, 3)
		if err != nil {
			t.Fatalf("LoadMore() error = %v", err)
		}
		if result.Page != 3 || len(result.Data) != 1 {
			t.Errorf("result = %+v, want a stateless page-3 fetch", result)
		}
		if len(dk.searchPages) != 1 || dk.searchPages[0] != 3 {
			t.Errorf("searchPages = %v, want [3]", dk.searchPages)
		}
	})
}

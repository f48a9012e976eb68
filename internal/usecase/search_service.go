package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pricefinder/backend/internal/domain"
	"github.com/pricefinder/backend/internal/infrastructure/digikala"
	"github.com/pricefinder/backend/internal/infrastructure/torob"
	"golang.org/x/sync/errgroup"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// SearchService fans search requests out to both platforms, normalizes and
// ranks the results, and tracks pagination sessions.
type SearchService struct {
	digikalaClient domain.DigikalaClient
	torobClient    domain.TorobClient
	cache          domain.CacheRepository
	sessions       *SessionManager
	cacheTTL       time.Duration
	debug          bool
}

// NewSearchService creates a search service with its dependencies
func NewSearchService(
	digikalaClient domain.DigikalaClient,
	torobClient domain.TorobClient,
	cache domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &SearchService{
		digikalaClient: digikalaClient,
		torobClient:    torobClient,
		cache:          cache,
		sessions:       NewSessionManager(),
		cacheTTL:       cacheTTL,
		debug:          config.EnableDebugLogging,
	}
}

// SearchDigikala searches Digikala and returns the ranked, capped offer
// page. A failed call is retried against the search endpoint once more
// before the localized error surfaces.
func (s *SearchService) SearchDigikala(ctx context.Context, query string, page int) ([]domain.Offer, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("search:%s:%s:%d", domain.PlatformDigikala, query, page)
	if cached, ok := s.cachedOffers(ctx, cacheKey); ok {
		return cached, nil
	}

	resp, err := s.digikalaClient.Search(ctx, query, page)
	if err != nil {
		// One-level-deeper fallback: retry the search endpoint directly
		// before giving up on the platform.
		resp, err = s.digikalaClient.Search(ctx, query, page)
		if err != nil {
			if s.debug {
				log.Printf("[SEARCH] Digikala fallback also failed: %v", err)
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrPlatformUnavailable, domain.MsgDigikalaSearchFailed)
		}
	}

	var products []domain.DigikalaProduct
	if resp.Data != nil {
		products = resp.Data.Products
	}

	offers := make([]domain.Offer, 0, len(products))
	for i := range products {
		offers = append(offers, digikala.MapSearchProduct(&products[i]))
	}

	SortByPrice(offers)
	offers = Truncate(offers, domain.DigikalaPageCap)

	s.storeOffers(ctx, cacheKey, offers)
	return offers, nil
}

// SearchTorob refines the query through the suggestion endpoint, searches
// Torob, and returns the ranked, capped offer page
func (s *SearchService) SearchTorob(ctx context.Context, query string, page int) ([]domain.Offer, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("search:%s:%s:%d", domain.PlatformTorob, query, page)
	if cached, ok := s.cachedOffers(ctx, cacheKey); ok {
		return cached, nil
	}

	searchQuery, _ := s.torobClient.Suggest(ctx, query)
	if searchQuery == "" {
		searchQuery = query
	}

	resp, err := s.torobClient.Search(ctx, searchQuery, page)
	if err != nil {
		if s.debug {
			log.Printf("[SEARCH] Torob search failed: %v", err)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrPlatformUnavailable, domain.MsgTorobSearchFailed)
	}

	offers := make([]domain.Offer, 0, len(resp.Results))
	for i := range resp.Results {
		offers = append(offers, torob.MapSearchItem(&resp.Results[i]))
	}

	SortByPrice(offers)
	offers = Truncate(offers, domain.TorobPageCap)

	s.storeOffers(ctx, cacheKey, offers)
	return offers, nil
}

// SearchBoth queries both platforms concurrently. Each branch's outcome is
// captured independently; one platform failing never suppresses the other.
// A fresh call resets the pagination session for the query.
func (s *SearchService) SearchBoth(ctx context.Context, query string, digikalaPage, torobPage int) (*domain.CombinedResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	s.sessions.Reset(query)

	var combined domain.CombinedResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		offers, err := s.SearchDigikala(gctx, query, digikalaPage)
		combined.Digikala = platformOutcome(offers, err)
		return nil
	})
	g.Go(func() error {
		offers, err := s.SearchTorob(gctx, query, torobPage)
		combined.Torob = platformOutcome(offers, err)
		return nil
	})

	// Branches never return errors; the join only waits.
	_ = g.Wait()

	s.recordInitialPage(query, domain.PlatformDigikala, combined.Digikala, digikalaPage, domain.DigikalaPageCap)
	s.recordInitialPage(query, domain.PlatformTorob, combined.Torob, torobPage, domain.TorobPageCap)

	return &combined, nil
}

// LoadMore fetches the next page for one platform. Re-entrant calls while a
// fetch is outstanding, and calls past exhaustion, return an empty page.
func (s *SearchService) LoadMore(ctx context.Context, query, platform string, page int) (*domain.LoadMoreResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	var (
		pageCap int
		fetch   func(context.Context, string, int) ([]domain.Offer, error)
	)
	switch platform {
	case domain.PlatformDigikala:
		pageCap = domain.DigikalaPageCap
		fetch = s.SearchDigikala
	case domain.PlatformTorob:
		pageCap = domain.TorobPageCap
		fetch = s.SearchTorob
	default:
		return nil, fmt.Errorf("%w: unknown platform %q", domain.ErrInvalidRequest, platform)
	}

	sessionPage, ok := s.sessions.Begin(query, platform)
	if !ok {
		// No active session for this query, or the platform is loading or
		// exhausted: an explicit page request still goes through statelessly.
		if page < 1 {
			return &domain.LoadMoreResult{Platform: platform, Page: page, Data: []domain.Offer{}}, nil
		}
		offers, err := fetch(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return &domain.LoadMoreResult{Platform: platform, Page: page, Data: offers}, nil
	}

	if page < 1 {
		page = sessionPage
	}

	offers, err := fetch(ctx, query, page)
	s.sessions.Complete(query, platform, page, offers, pageCap, err)
	if err != nil {
		return nil, err
	}

	return &domain.LoadMoreResult{Platform: platform, Page: page, Data: offers}, nil
}

// SessionState exposes the pagination snapshot for a platform
func (s *SearchService) SessionState(platform string) (domain.SearchState, bool) {
	return s.sessions.State(platform)
}

// recordInitialPage seeds the session with the first page's outcome so
// hasMore reflects whether the platform returned a full batch
func (s *SearchService) recordInitialPage(query, platform string, outcome domain.PlatformResult, page, pageCap int) {
	if page < 1 {
		page = 1
	}
	if _, ok := s.sessions.Begin(query, platform); !ok {
		return
	}
	var err error
	if !outcome.Success {
		err = domain.ErrPlatformUnavailable
	}
	s.sessions.Complete(query, platform, page, outcome.Data, pageCap, err)
}

func platformOutcome(offers []domain.Offer, err error) domain.PlatformResult {
	if err != nil {
		return domain.PlatformResult{Success: false, Data: []domain.Offer{}, Error: err.Error()}
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	return domain.PlatformResult{Success: true, Data: offers}
}

// cachedOffers returns a previously stored result page, if any
func (s *SearchService) cachedOffers(ctx context.Context, key string) ([]domain.Offer, bool) {
	if s.cache == nil {
		return nil, false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	offers, ok := value.([]domain.Offer)
	return offers, ok
}

func (s *SearchService) storeOffers(ctx context.Context, key string, offers []domain.Offer) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, offers, s.cacheTTL); err != nil && s.debug {
		log.Printf("[SEARCH] cache store failed for %s: %v", key, err)
	}
}

package torob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pricefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchPageSize is the page size requested from the search endpoint; the
// ranking pipeline truncates to the Torob page cap afterwards.
const searchPageSize = 24

// Client handles communication with the Torob public API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Torob API client
func NewClient(baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// newSessionID generates the suid token Torob expects on every call
func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PriceFinder/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformUnavailable, err)
	}

	return resp, nil
}

// Suggest refines a query through the suggestion endpoint. Any failure is
// absorbed: the caller always gets a usable query back.
func (c *Client) Suggest(ctx context.Context, query string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return query, nil
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("source", "next_desktop")
	reqURL := fmt.Sprintf("%s/suggestion2/?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		if c.debug {
			log.Printf("[TOROB] Suggestion request failed, using raw query: %v", err)
		}
		return query, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return query, nil
	}

	var suggestions []domain.TorobSuggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return query, nil
	}

	if len(suggestions) > 0 && suggestions[0].Text != "" {
		if c.debug {
			log.Printf("[TOROB] Query refined %q -> %q", query, suggestions[0].Text)
		}
		return suggestions[0].Text, nil
	}

	return query, nil
}

// Search queries /v4/base-product/search/ for products matching the query
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.TorobSearchResponse, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Add("page", fmt.Sprintf("%d", page))
	params.Add("sort", "popularity")
	params.Add("size", fmt.Sprintf("%d", searchPageSize))
	params.Add("query", query)
	params.Add("q", query)
	params.Add("source", "next_desktop")
	params.Add("rank_offset", fmt.Sprintf("%d", (page-1)*searchPageSize))
	params.Add("suid", newSessionID())
	reqURL := fmt.Sprintf("%s/v4/base-product/search/?%s", c.baseURL, params.Encode())

	if c.debug {
		log.Printf("[TOROB] Search query=%q page=%d", query, page)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrPlatformUnavailable, resp.StatusCode, string(body))
	}

	var searchResp domain.TorobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &searchResp, nil
}

// GetProduct fetches a product detail payload from /v4/base-product/details/
func (c *Client) GetProduct(ctx context.Context, productKey string) (*domain.TorobDetailResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("source", "next_desktop")
	params.Add("discover_method", "search")
	params.Add("suid", newSessionID())
	params.Add("prk", productKey)
	params.Add("max_seller_count", "30")
	reqURL := fmt.Sprintf("%s/v4/base-product/details/?%s", c.baseURL, params.Encode())

	if c.debug {
		log.Printf("[TOROB] GetProduct key=%s", productKey)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrPlatformUnavailable, resp.StatusCode, string(body))
	}

	var detail domain.TorobDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &detail, nil
}

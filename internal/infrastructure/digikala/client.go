package digikala

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pricefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Digikala public API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Digikala API client
func NewClient(baseURL string) *Client {
	// Keep well under the public API's tolerance: 2 req/sec, burst of 5
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

// exponentialBackoff returns the wait duration before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers
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

// Search queries /v1/search/ for products matching the query.
// An empty product list is not an error.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.DigikalaSearchResponse, error) {
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/v1/search/", c.baseURL)
	params := url.Values{}
	params.Add("q", query)
	params.Add("page", fmt.Sprintf("%d", page))
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	if c.debug {
		log.Printf("[DIGIKALA] Search query=%q page=%d", query, page)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[DIGIKALA] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[DIGIKALA] Search status %d (attempt %d)", resp.StatusCode, attempt)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPlatformUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp domain.DigikalaSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		return &searchResp, nil
	}

	return nil, lastErr
}

// GetProduct fetches a product detail payload from /v2/product/{id}/
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.DigikalaProduct, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v2/product/%s/", c.baseURL, url.PathEscape(productID))

	if c.debug {
		log.Printf("[DIGIKALA] GetProduct id=%s", productID)
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

	var detail domain.DigikalaDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if detail.Data == nil || detail.Data.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	return detail.Data.Product, nil
}

package torob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricefinder/backend/internal/domain"
)

func TestClient_Suggest(t *testing.T) {
	t.Run("returns the top suggestion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/suggestion2/", r.URL.Path)
			assert.Equal(t, "galaxy", r.URL.Query().Get("q"))
			w.Write([]byte(`[{"text": "گوشی سامسونگ galaxy"}, {"text": "galaxy watch"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		refined, err := client.Suggest(context.Background(), "galaxy")

		require.NoError(t, err)
		assert.Equal(t, "گوشی سامسونگ galaxy", refined)
	})

	t.Run("upstream failure falls back to the raw query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		refined, err := client.Suggest(context.Background(), "galaxy")

		require.NoError(t, err)
		assert.Equal(t, "galaxy", refined)
	})

	t.Run("empty suggestion list falls back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		refined, err := client.Suggest(context.Background(), "galaxy")

		require.NoError(t, err)
		assert.Equal(t, "galaxy", refined)
	})
}

func TestClient_Search(t *testing.T) {
	t.Run("sends the paging parameters and session token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/v4/base-product/search/", r.URL.Path)
			assert.Equal(t, "galaxy a54", q.Get("query"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "24", q.Get("size"))
			assert.Equal(t, "24", q.Get("rank_offset"))
			assert.Equal(t, "popularity", q.Get("sort"))
			assert.NotEmpty(t, q.Get("suid"))
			assert.NotContains(t, q.Get("suid"), "-")

			w.Write([]byte(`{"results": [{"random_key": "abc", "name1": "گوشی", "price": 150000}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		resp, err := client.Search(context.Background(), "galaxy a54", 2)

		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "abc", resp.Results[0].RandomKey)
		assert.Equal(t, int64(150000), resp.Results[0].Price)
	})

	t.Run("non-200 surfaces a platform error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Search(context.Background(), "galaxy", 1)

		assert.ErrorIs(t, err, domain.ErrPlatformUnavailable)
	})
}

func TestClient_GetProduct(t *testing.T) {
	t.Run("decodes the detail payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/v4/base-product/details/", r.URL.Path)
			assert.Equal(t, "abc123", q.Get("prk"))
			assert.Equal(t, "30", q.Get("max_seller_count"))

			w.Write([]byte(`{
				"name1": "گوشی سامسونگ",
				"price": 150000,
				"products_info": {
					"result": [
						{"shop_name": "تکنولایف", "shop_id": 42, "price": 150000}
					]
				}
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		detail, err := client.GetProduct(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "گوشی سامسونگ", detail.Name1)
		require.NotNil(t, detail.ProductsInfo)
		require.Len(t, detail.ProductsInfo.Result, 1)
		assert.Equal(t, int64(42), detail.ProductsInfo.Result[0].ShopID)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetProduct(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

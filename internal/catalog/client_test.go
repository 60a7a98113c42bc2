package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httpclient"
	"github.com/utafrali/EcommerceGo/storefront/pkg/logger"
)

const productJSON = `{"id":1,"title":"Essence Mascara Lash Princess","description":"Popular mascara",
"category":"beauty","price":9.99,"discountPercentage":7.17,"rating":4.94,"stock":5,"brand":"Essence",
"thumbnail":"https://cdn.dummyjson.com/1/thumbnail.png","images":["https://cdn.dummyjson.com/1/1.png"]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.Timeout = 2 * time.Second
	cb := httpclient.NewCircuitBreakerClient(httpclient.New(cfg), httpclient.DefaultCircuitBreakerConfig("catalog-"+t.Name()), logger.Discard())
	return NewClient(srv.URL+"/", cb, logger.Discard()), srv
}

// ============================================================================
// Successful requests
// ============================================================================

func TestListProducts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "24", r.URL.Query().Get("skip"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprintf(w, `{"products":[%s],"total":194,"skip":24,"limit":12}`, productJSON)
	})

	page, err := c.ListProducts(context.Background(), 12, 24)
	require.NoError(t, err)
	assert.Equal(t, 194, page.Total)
	assert.Equal(t, 24, page.Skip)
	assert.Equal(t, 12, page.Limit)
	require.Len(t, page.Products, 1)

	p := page.Products[0]
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 4.94, p.Rating.Rate)
	assert.Equal(t, "Essence", p.Brand)
}

func TestGetProduct(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		_, _ = w.Write([]byte(productJSON))
	})

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "https://cdn.dummyjson.com/1/thumbnail.png", p.Thumbnail)
}

func TestSearchProducts_EncodesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "red lipstick & gloss", r.URL.Query().Get("q"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products":[],"total":0,"skip":0,"limit":12}`))
	})

	page, err := c.SearchProducts(context.Background(), "red lipstick & gloss", 12)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestListProductsByCategory(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/mens-shirts", r.URL.Path)
		fmt.Fprintf(w, `{"products":[%s],"total":5,"skip":0,"limit":12}`, productJSON)
	})

	page, err := c.ListProductsByCategory(context.Background(), "mens-shirts", 12)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
}

func TestListProductsByCategory_Empty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.ListProductsByCategory(context.Background(), "", 12)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListCategories(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"slug":"beauty","name":"Beauty","url":"u"},"groceries"]`))
	})

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Beauty", cats[0].Name)
	assert.Equal(t, "groceries", cats[1].Slug)
}

// ============================================================================
// Error mapping
// ============================================================================

func TestGetProduct_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product with id '999' not found"}`))
	})

	_, err := c.GetProduct(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "catalog: Product with id '999' not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

func TestGetProduct_InvalidID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.GetProduct(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestServerError_MapsToUnavailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListProducts(context.Background(), 12, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}

func TestBreakerOpens_AfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		_, err := c.ListProducts(context.Background(), 1, 0)
		require.Error(t, err)
	}

	_, err := c.ListProducts(context.Background(), 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.True(t, httpclient.IsBreakerRejection(err))
	assert.Equal(t, int32(5), calls.Load())
}

func TestDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":`))
	})

	_, err := c.ListProducts(context.Background(), 12, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog ListProducts response")
}

func TestNetworkError(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog ListCategories")
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products":[],"total":0,"skip":0,"limit":1}`))
	})
	assert.NoError(t, c.Ping(context.Background()))
}

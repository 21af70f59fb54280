package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/pkg/router"
)

func handler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products", "catalog.products", handler("list"))
	r.Get("/products/{id}", "catalog.product", handler("one"))

	path, ok := r.Path("catalog.products")
	require.True(t, ok)
	assert.Equal(t, "/products", path)

	url, err := r.URL("catalog.product", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/products/7", url)

	_, err = r.URL("catalog.product", nil)
	assert.Error(t, err, "missing parameter")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupsNestAndPrefix(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/sales", "admin.sales", handler("sales"))

	path, ok := r.Path("admin.sales")
	require.True(t, ok)
	assert.Equal(t, "/api/admin/sales", path)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/admin/sales")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	outer := r.Group("/api", mw("outer"))
	inner := outer.Group("/admin", mw("inner"))
	inner.Get("/x", "x", handler("ok"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/admin/x")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

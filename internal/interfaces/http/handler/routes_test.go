package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// registeredRoutes builds the API route table the way the server does and
// indexes it as "METHOD path".
func registeredRoutes() map[string]bool {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")

	NewProductHandler(nil).RegisterRoutes(api)
	NewCategoryHandler(nil).RegisterRoutes(api)
	NewWarehouseHandler(nil).RegisterRoutes(api)
	NewSupplierHandler(nil).RegisterRoutes(api)
	NewPartnerHandler(nil).RegisterRoutes(api)
	NewInventoryHandler(nil).RegisterRoutes(api)

	routes := make(map[string]bool)
	for _, route := range engine.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestRegisteredRoutes(t *testing.T) {
	routes := registeredRoutes()

	t.Run("inventory listings use singular segments", func(t *testing.T) {
		assert.True(t, routes[http.MethodGet+" /api/v1/inventory/warehouse/:warehouse_id"])
		assert.True(t, routes[http.MethodGet+" /api/v1/inventory/product/:product_id"])
		assert.False(t, routes[http.MethodGet+" /api/v1/inventory/warehouses/:warehouse_id"])
		assert.False(t, routes[http.MethodGet+" /api/v1/inventory/products/:product_id"])
	})

	t.Run("location updates use PATCH", func(t *testing.T) {
		assert.True(t, routes[http.MethodPatch+" /api/v1/inventory/:id/location"])
		assert.False(t, routes[http.MethodPut+" /api/v1/inventory/:id/location"])
	})

	t.Run("active listings exposed for pickers", func(t *testing.T) {
		assert.True(t, routes[http.MethodGet+" /api/v1/products/active"])
		assert.True(t, routes[http.MethodGet+" /api/v1/suppliers/active"])
		assert.True(t, routes[http.MethodGet+" /api/v1/warehouses/active"])
		assert.True(t, routes[http.MethodGet+" /api/v1/categories/active"])
	})

	t.Run("products browsable by category", func(t *testing.T) {
		assert.True(t, routes[http.MethodGet+" /api/v1/products/category/:category_id"])
	})

	t.Run("category trees exposed", func(t *testing.T) {
		assert.True(t, routes[http.MethodGet+" /api/v1/categories/trees"])
	})

	t.Run("resource updates use PATCH", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/products/:id",
			"/api/v1/categories/:id",
			"/api/v1/warehouses/:id",
			"/api/v1/suppliers/:id",
			"/api/v1/partners/:id",
		} {
			assert.True(t, routes[http.MethodPatch+" "+path], path)
			assert.False(t, routes[http.MethodPut+" "+path], path)
		}
	})
}

// Package routes wires every HTTP endpoint of the storefront and the
// back-office onto the router.
package routes

import (
	"net/http"

	"github.com/rrboots/storefront/app/controllers"
	gql "github.com/rrboots/storefront/app/graphql"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/metrics"
	"github.com/rrboots/storefront/pkg/middleware"
	"github.com/rrboots/storefront/pkg/router"
)

// Register mounts every route. Three surfaces:
//
//   - /api/*        public storefront JSON (catalogue, checkout, session polls)
//   - /api/admin/*  back-office JSON, guarded by RequireAdmin
//   - /admin/*      server-rendered pages behind the presence-only gate
func Register(r *router.Router) {
	pages := controllers.NewPageController()
	catalog := controllers.NewCatalogController()
	sessions := controllers.NewSessionController()
	sales := controllers.NewSaleController()
	products := controllers.NewProductController()
	categories := controllers.NewCategoryController()
	brands := controllers.NewBrandController()
	settings := controllers.NewSettingsController()
	uploads := controllers.NewUploadController()
	feed := controllers.NewFeedController()

	// Storefront shell and uploaded assets.
	r.Get("/", "pages.storefront", pages.Storefront)
	r.HandleFunc("/public/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/public/", http.FileServer(http.Dir("public"))).ServeHTTP(w, req)
	})

	// Operational endpoints.
	r.Get("/healthz", "ops.health", controllers.Health)
	r.HandleFunc("/metrics", metrics.Handler())

	// Public JSON API.
	api := r.Group("/api")
	api.Get("/products", "catalog.products", catalog.Products)
	api.Get("/products/{id}", "catalog.product", catalog.Product)
	api.Get("/categories", "catalog.categories", catalog.Categories)
	api.Get("/brands", "catalog.brands", catalog.Brands)
	api.Get("/site", "catalog.site", settings.Site)
	api.Post("/checkout", "checkout", sales.Checkout)

	// Session lifecycle lives under /api/admin but outside the guard:
	// login creates the session, and the check/timeout polls must answer
	// for missing or expired sessions too.
	api.Post("/admin/login", "session.login", sessions.Login)
	api.Post("/admin/logout", "session.logout", sessions.Logout)
	api.Get("/admin/session", "session.check", sessions.Check)
	api.Get("/admin/session/timeout", "session.timeout", sessions.Timeout)

	// Read-only GraphQL catalogue.
	schema, err := gql.NewSchema()
	if err != nil {
		logger.Error("graphql schema init failed", "error", err)
	} else {
		api.Post("/graphql", "catalog.graphql", gql.Handler(schema))
	}

	// Back-office JSON API.
	admin := api.Group("/admin", middleware.RequireAdmin)
	admin.Post("/session/refresh", "session.refresh", sessions.Refresh)
	admin.Post("/session/extend", "session.extend", sessions.Extend)

	admin.Get("/products", "admin.products.index", products.Index)
	admin.Post("/products", "admin.products.store", products.Store)
	admin.Get("/products/{id}", "admin.products.show", products.Show)
	admin.Put("/products/{id}", "admin.products.update", products.Update)
	admin.Delete("/products/{id}", "admin.products.destroy", products.Destroy)
	admin.Put("/products/{id}/stock", "admin.products.stock", products.Stock)

	admin.Get("/categories", "admin.categories.index", categories.Index)
	admin.Post("/categories", "admin.categories.store", categories.Store)
	admin.Get("/categories/{id}", "admin.categories.show", categories.Show)
	admin.Put("/categories/{id}", "admin.categories.update", categories.Update)
	admin.Delete("/categories/{id}", "admin.categories.destroy", categories.Destroy)

	admin.Get("/brands", "admin.brands.index", brands.Index)
	admin.Post("/brands", "admin.brands.store", brands.Store)
	admin.Put("/brands/{id}", "admin.brands.update", brands.Update)
	admin.Delete("/brands/{id}", "admin.brands.destroy", brands.Destroy)

	admin.Get("/sales", "admin.sales.index", sales.Index)
	admin.Get("/sales/{id}", "admin.sales.show", sales.Show)

	admin.Get("/settings", "admin.settings.show", settings.Show)
	admin.Put("/settings", "admin.settings.update", settings.Update)
	admin.Post("/settings/password", "admin.settings.password", settings.ChangePassword)

	admin.Post("/uploads", "admin.uploads.store", uploads.Store)
	admin.Get("/feed/orders", "admin.feed.orders", feed.Orders)

	// Server-rendered admin pages behind the presence-only cookie gate.
	adminPages := r.Group("/admin", middleware.AdminGate)
	adminPages.Get("", "admin.dashboard", pages.AdminDashboard)
	adminPages.Get("/login", "admin.login", pages.AdminLogin)
}

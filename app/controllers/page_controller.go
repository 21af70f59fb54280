package controllers

import (
	"net/http"

	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/app/views"
	"github.com/rrboots/storefront/pkg/logger"
)

// pageData is what every HTML template receives.
type pageData struct {
	StoreName    string
	Announcement string
}

// PageController renders the server-side HTML shells: the storefront and
// the two admin pages behind the route gate.
type PageController struct {
	settings *services.SettingsService
}

func NewPageController() *PageController {
	return &PageController{settings: services.NewSettingsService()}
}

// Storefront renders the public landing page.
func (c *PageController) Storefront(w http.ResponseWriter, r *http.Request) {
	c.render(w, "storefront.html")
}

// AdminLogin renders the login page. The gate redirects here when no
// session cookie is present.
func (c *PageController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	c.render(w, "admin_login.html")
}

// AdminDashboard renders the back-office shell with the live order feed.
func (c *PageController) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	c.render(w, "admin_dashboard.html")
}

func (c *PageController) render(w http.ResponseWriter, name string) {
	data := pageData{StoreName: "RR Boots"}
	if cfg, err := c.settings.Get(); err == nil {
		data.StoreName = cfg.StoreName
		data.Announcement = cfg.Announcement
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render failed", "template", name, "error", err)
	}
}

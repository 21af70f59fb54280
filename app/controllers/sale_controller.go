package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/validate"
)

// checkoutInput is the public checkout payload. Customer fields are
// optional but must be well formed when present.
type checkoutInput struct {
	CustomerName  string              `json:"customer_name"  validate:"nullable,max=255"`
	CustomerEmail string              `json:"customer_email" validate:"nullable,email"`
	CustomerPhone string              `json:"customer_phone" validate:"nullable,phone"`
	Items         []services.SaleLine `json:"items"`
}

// SaleController handles the public checkout and the admin sales listing.
type SaleController struct {
	sales    *services.SaleService
	checkout *services.CheckoutService
	repo     *repositories.SaleRepository
}

func NewSaleController() *SaleController {
	return &SaleController{
		sales:    services.NewSaleService(),
		checkout: services.NewCheckoutService(),
		repo:     repositories.NewSaleRepository(),
	}
}

// Checkout records a sale, decrements stock atomically and returns the
// WhatsApp handoff link. Out-of-stock requests fail with 409 and the
// first offending line.
func (c *SaleController) Checkout(w http.ResponseWriter, r *http.Request) {
	var body checkoutInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Items) == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}
	for _, line := range body.Items {
		if line.ProductID == 0 || line.Size == "" || line.Quantity < 1 {
			response.Error(w, http.StatusUnprocessableEntity, "each item needs a product, size and positive quantity")
			return
		}
	}

	sale, err := c.sales.Record(body.CustomerName, body.CustomerEmail, body.CustomerPhone, body.Items)
	if err != nil {
		var stockErr *services.InsufficientStockError
		if errors.As(err, &stockErr) {
			response.Error(w, http.StatusConflict, stockErr.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not complete checkout")
		return
	}

	link, err := c.checkout.WhatsAppLink(sale)
	if err != nil {
		// The sale is committed; a broken handoff link should not undo it.
		response.Created(w, map[string]interface{}{"sale": sale, "whatsapp_url": ""})
		return
	}

	response.Created(w, map[string]interface{}{
		"sale":         sale,
		"whatsapp_url": link,
	})
}

// Index lists sales for the back-office, newest first and paginated.
// Defaults: page 1, limit 20.
func (c *SaleController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sales, pagination, err := c.repo.List(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	response.Paginated(w, sales, pagination)
}

// Show returns one sale with its line items.
func (c *SaleController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	sale, err := c.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load sale")
		return
	}
	response.Success(w, sale)
}

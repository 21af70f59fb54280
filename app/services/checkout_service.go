package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
)

// CheckoutService turns a recorded sale into a WhatsApp handoff link.
// The store has no payment gateway: checkout reserves the stock and sends
// the customer to the store's WhatsApp with a pre-filled order message.
type CheckoutService struct {
	config *repositories.SiteConfigRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{config: repositories.NewSiteConfigRepository()}
}

// WhatsAppLink builds a wa.me URL for the sale, addressed to the store's
// configured number, with the order summary urlencoded in the text query.
func (s *CheckoutService) WhatsAppLink(sale models.Sale) (string, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return "", fmt.Errorf("checkout: load site config: %w", err)
	}

	number := sanitizeNumber(cfg.WhatsAppNumber)
	if number == "" {
		return "", fmt.Errorf("checkout: no WhatsApp number configured")
	}

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(OrderMessage(sale)), nil
}

// OrderMessage renders the plain-text order summary sent over WhatsApp.
func OrderMessage(sale models.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I would like to order (order #%d):\n", sale.ID)
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "- %s (size %s) x%d: $%s\n",
			item.ProductName, item.Size, item.Quantity, item.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s", sale.Total.StringFixed(2))
	if sale.CustomerName != "" {
		fmt.Fprintf(&b, "\nName: %s", sale.CustomerName)
	}
	return b.String()
}

// sanitizeNumber strips everything but digits; wa.me wants the number in
// international format without plus, spaces or dashes.
func sanitizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

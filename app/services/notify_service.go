package services

import (
	"encoding/json"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/config"
	"github.com/rrboots/storefront/pkg/event"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/mail"
	"github.com/rrboots/storefront/pkg/ws"
)

// RegisterSaleListeners wires the side effects of a completed sale: the
// live order feed broadcast for connected admin dashboards and the owner
// notification email. Both are best-effort; a failed notification never
// rolls back a committed sale.
func RegisterSaleListeners() {
	event.Listen(EventSaleCompleted, func(payload interface{}) {
		sale, ok := payload.(*models.Sale)
		if !ok {
			return
		}

		if raw, err := json.Marshal(sale); err == nil {
			select {
			case ws.OrderFeed.Broadcast <- raw:
			default:
				// Feed buffer full; dashboards catch up from the sales list.
			}
		}

		owner := config.MailOwner()
		if owner == "" {
			return
		}
		go func() {
			err := mail.To(owner).
				Subject("New order received").
				Text(OrderMessage(*sale)).
				Send()
			if err != nil {
				logger.Warn("owner notification failed", "sale_id", sale.ID, "error", err)
			}
		}()
	})
}

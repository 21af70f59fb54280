package controllers

import (
	"net/http"

	"github.com/rrboots/storefront/pkg/ws"
)

// FeedController upgrades admin clients onto the live order feed. Every
// completed sale is broadcast to connected dashboards as JSON.
type FeedController struct{}

func NewFeedController() *FeedController {
	return &FeedController{}
}

// Orders upgrades the connection and subscribes it to the order feed.
// The admin middleware has already vetted the session by the time this runs.
func (c *FeedController) Orders(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, ws.OrderFeed)
}

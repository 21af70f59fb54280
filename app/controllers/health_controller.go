package controllers

import (
	"net/http"

	"github.com/rrboots/storefront/pkg/cache"
	"github.com/rrboots/storefront/pkg/database"
	"github.com/rrboots/storefront/pkg/response"
)

// Health reports liveness plus the state of the two backing services.
// The cache being down is not fatal; a dead database is.
func Health(w http.ResponseWriter, r *http.Request) {
	dbOK := database.Ping() == nil

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	body := map[string]interface{}{
		"database": dbOK,
		"cache":    cache.RDB != nil,
	}
	if !dbOK {
		response.Error(w, status, "database unreachable")
		return
	}
	response.Success(w, body)
}

package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/config"
	"github.com/rrboots/storefront/pkg/auth"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/session"
)

// SessionController handles admin login and the session lifecycle
// endpoints (check, refresh, timeout poll, extend, logout).
type SessionController struct {
	settings *services.SettingsService
}

func NewSessionController() *SessionController {
	return &SessionController{settings: services.NewSettingsService()}
}

// Login authenticates the admin. On failure it sets the short-lived
// login-error cookie with a reason code (missing, invalid, server) so the
// login page can show why without a query parameter.
func (c *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		session.WriteError(w, "missing")
		response.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if body.Username == "" || body.Password == "" {
		session.WriteError(w, "missing")
		response.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	// Username is compared in constant time alongside the bcrypt check so
	// the two failure modes are indistinguishable to a caller.
	userOK := subtle.ConstantTimeCompare(
		[]byte(body.Username), []byte(config.AdminUsername())) == 1

	passOK, err := c.settings.CheckPassword(body.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("login: site config row missing")
		} else {
			logger.Error("login: password check failed", "error", err)
		}
		session.WriteError(w, "server")
		response.Error(w, http.StatusInternalServerError, "login unavailable")
		return
	}

	if !userOK || !passOK {
		logger.Warn("login rejected", "username", body.Username)
		session.WriteError(w, "invalid")
		response.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	data := session.New(time.Now())
	if err := session.Write(w, data); err != nil {
		session.WriteError(w, "server")
		response.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}

	// Bearer token for headless API clients; browser admins rely on the
	// cookie alone.
	token, err := auth.GenerateToken(body.Username)
	if err != nil {
		logger.Error("login: token generation failed", "error", err)
		token = ""
	}

	logger.Info("admin login", "session_id", data.SessionID)
	response.Success(w, map[string]interface{}{
		"session_id": data.SessionID,
		"expires_in": int(session.Lifetime.Seconds()),
		"token":      token,
	})
}

// Check reports whether the current session passes the basic authenticated
// check (cookie present, well formed, under the 2 hour activity cap).
func (c *SessionController) Check(w http.ResponseWriter, r *http.Request) {
	res := session.VerifyRequest(r, time.Now())
	response.Success(w, map[string]interface{}{
		"authenticated": res.Valid(),
		"reason":        res.Reason,
	})
}

// Refresh slides the activity timestamp forward and re-issues the cookie.
// loginTime is preserved so the absolute cap keeps counting.
func (c *SessionController) Refresh(w http.ResponseWriter, r *http.Request) {
	res := session.VerifyRequest(r, time.Now())
	if !res.Valid() {
		response.Unauthorized(w)
		return
	}

	refreshed := res.Data.Refreshed(time.Now())
	if err := session.Write(w, refreshed); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not refresh session")
		return
	}
	response.Success(w, map[string]interface{}{
		"refreshed":  true,
		"expires_in": int(refreshed.Remaining(time.Now()).Seconds()),
	})
}

// Timeout is the explicit poll: it applies both the absolute 2 hour cap
// (from loginTime) and the stricter 30 minute inactivity cap (from
// timestamp). A session can pass Check and still be reported expired here.
func (c *SessionController) Timeout(w http.ResponseWriter, r *http.Request) {
	res := session.VerifyRequest(r, time.Now())
	if res.Status == session.StatusMissing || res.Status == session.StatusMalformed {
		response.Success(w, map[string]interface{}{
			"expired": true,
			"reason":  "no session",
		})
		return
	}

	var d session.Data
	if res.Data != nil {
		d = *res.Data
	}
	if res.Status == session.StatusExpired {
		response.Success(w, map[string]interface{}{
			"expired": true,
			"reason":  res.Reason,
		})
		return
	}

	expired, reason := d.TimedOut(time.Now())
	response.Success(w, map[string]interface{}{
		"expired": expired,
		"reason":  reason,
	})
}

// Extend restarts the session clocks entirely: a fresh loginTime and
// timestamp under the same session id. The admin's "stay signed in" action.
func (c *SessionController) Extend(w http.ResponseWriter, r *http.Request) {
	res := session.VerifyRequest(r, time.Now())
	if !res.Valid() {
		response.Unauthorized(w)
		return
	}

	now := time.Now()
	extended := session.New(now)
	extended.SessionID = res.Data.SessionID
	if err := session.Write(w, extended); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not extend session")
		return
	}
	response.Success(w, map[string]interface{}{
		"extended":   true,
		"expires_in": int(session.Lifetime.Seconds()),
	})
}

// Logout clears the cookie.
func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	response.Success(w, map[string]interface{}{"logged_out": true})
}

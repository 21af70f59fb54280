package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/app/controllers"
	"github.com/rrboots/storefront/pkg/session"
)

func postLogin(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	ctrl := controllers.NewSessionController()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")

	rec := postLogin(t, `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	c := cookieByName(t, rec, session.CookieName)
	require.NotNil(t, c, "session cookie set")
	res := session.Verify(c.Value, time.Now())
	assert.True(t, res.Valid())

	assert.Nil(t, cookieByName(t, rec, session.ErrorCookieName))

	var body struct {
		Data struct {
			Token     string `json:"token"`
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body.Data.Token)
	assert.NotEmpty(t, body.Data.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")

	rec := postLogin(t, `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c := cookieByName(t, rec, session.ErrorCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "invalid", c.Value)
	assert.Equal(t, 60, c.MaxAge)
	assert.Nil(t, cookieByName(t, rec, session.CookieName))
}

func TestLoginWrongUsername(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")

	rec := postLogin(t, `{"username":"root","password":"admin123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c := cookieByName(t, rec, session.ErrorCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "invalid", c.Value)
}

func TestLoginMissingFields(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")

	rec := postLogin(t, `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c := cookieByName(t, rec, session.ErrorCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "missing", c.Value)
}

func TestLoginServerError(t *testing.T) {
	// No site_configs row at all: the password check fails server-side.
	setupDB(t)

	rec := postLogin(t, `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	c := cookieByName(t, rec, session.ErrorCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "server", c.Value)
}

func TestTimeoutPollAppliesInactivityCap(t *testing.T) {
	setupDB(t)
	ctrl := controllers.NewSessionController()

	// 45 minutes idle: valid for Check, expired for Timeout.
	d := session.New(time.Now().Add(-45 * time.Minute))

	rec := httptest.NewRecorder()
	require.NoError(t, session.Write(rec, d))
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	ctrl.Check(rec, req)

	var checkBody struct {
		Data struct {
			Authenticated bool `json:"authenticated"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&checkBody))
	assert.True(t, checkBody.Data.Authenticated)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/session/timeout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	ctrl.Timeout(rec, req)

	var timeoutBody struct {
		Data struct {
			Expired bool   `json:"expired"`
			Reason  string `json:"reason"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&timeoutBody))
	assert.True(t, timeoutBody.Data.Expired)
	assert.Equal(t, "inactive too long", timeoutBody.Data.Reason)
}

func TestRefreshKeepsLoginTime(t *testing.T) {
	setupDB(t)
	ctrl := controllers.NewSessionController()

	start := time.Now().Add(-time.Hour)
	d := session.New(start)

	rec := httptest.NewRecorder()
	require.NoError(t, session.Write(rec, d))
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/api/admin/session/refresh", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	ctrl.Refresh(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	refreshed := cookieByName(t, rec, session.CookieName)
	require.NotNil(t, refreshed)
	res := session.Verify(refreshed.Value, time.Now())
	require.True(t, res.Valid())
	assert.Equal(t, start.UnixMilli(), res.Data.LoginTime)
	assert.Greater(t, res.Data.Timestamp, start.UnixMilli())
}

func TestExtendRestartsClocks(t *testing.T) {
	setupDB(t)
	ctrl := controllers.NewSessionController()

	start := time.Now().Add(-90 * time.Minute)
	d := session.New(start)

	rec := httptest.NewRecorder()
	require.NoError(t, session.Write(rec, d))
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/api/admin/session/extend", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	ctrl.Extend(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	extended := cookieByName(t, rec, session.CookieName)
	require.NotNil(t, extended)
	res := session.Verify(extended.Value, time.Now())
	require.True(t, res.Valid())
	assert.Greater(t, res.Data.LoginTime, start.UnixMilli())
	assert.Equal(t, d.SessionID, res.Data.SessionID)
}

func TestRefreshWithoutSessionIsUnauthorized(t *testing.T) {
	setupDB(t)
	ctrl := controllers.NewSessionController()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/session/refresh", nil)
	rec := httptest.NewRecorder()
	ctrl.Refresh(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	setupDB(t)
	ctrl := controllers.NewSessionController()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()
	ctrl.Logout(rec, req)

	c := cookieByName(t, rec, session.CookieName)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

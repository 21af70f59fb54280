// Package session implements the admin session lifecycle.
//
// The whole session lives client-side in the admin-session cookie as a JSON
// object with four fields: isAdmin, timestamp (last activity), loginTime
// (issuance) and a random sessionId. Two clocks bound its life:
//
//   - Lifetime: an absolute 2-hour cap measured from loginTime, and the
//     sliding rule `now - timestamp < Lifetime` applied by the basic
//     authenticated check.
//   - InactivityTimeout: a stricter 30-minute cap on `now - timestamp`,
//     applied only by the explicit timeout poll (TimedOut).
//
// The two rules disagree on purpose: a session whose timestamp is 45 minutes
// old still passes Verify but is reported expired by TimedOut. Unifying them
// is a product decision, so both are exported and both are enforced where
// the API contract says they are.
//
// Verification happens in exactly one place: Verify returns a typed Result
// (Valid / Missing / Malformed / Expired with a reason) and nothing else in
// the codebase parses the cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	// CookieName carries the JSON session object.
	CookieName = "admin-session"

	// ErrorCookieName carries a short-lived login failure reason code.
	ErrorCookieName = "login-error"

	// Lifetime is the absolute session cap and the cookie max-age.
	Lifetime = 2 * time.Hour

	// InactivityTimeout is the stricter sliding cap checked by TimedOut.
	InactivityTimeout = 30 * time.Minute

	// RefreshInterval is how often an active client is expected to call
	// the refresh endpoint. Advisory; the server never enforces it.
	RefreshInterval = 5 * time.Minute

	errorCookieMaxAge = 60 // seconds
)

// Data is the cookie payload. Timestamps are Unix milliseconds.
type Data struct {
	IsAdmin   bool   `json:"isAdmin"`
	Timestamp int64  `json:"timestamp"`
	LoginTime int64  `json:"loginTime"`
	SessionID string `json:"sessionId"`
}

// Status classifies the outcome of a verification.
type Status int

const (
	StatusValid Status = iota
	StatusMissing
	StatusMalformed
	StatusExpired
)

// Result is the single typed answer every caller gets about a session.
type Result struct {
	Status Status
	Reason string // set for Malformed and Expired
	Data   *Data  // set only for StatusValid
}

// Valid reports whether the session passed the basic authenticated check.
func (r Result) Valid() bool { return r.Status == StatusValid }

// New issues a fresh session: loginTime = timestamp = now, random id.
func New(now time.Time) Data {
	return Data{
		IsAdmin:   true,
		Timestamp: now.UnixMilli(),
		LoginTime: now.UnixMilli(),
		SessionID: newID(),
	}
}

// Refreshed returns a copy with timestamp moved to now. loginTime is
// untouched so the absolute cap keeps counting from the original login.
func (d Data) Refreshed(now time.Time) Data {
	d.Timestamp = now.UnixMilli()
	return d
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Verify applies the basic authenticated check to a raw cookie value:
// well-formed JSON (urlencoded in the cookie), all four fields present,
// isAdmin true, and now - timestamp < Lifetime.
func Verify(raw string, now time.Time) Result {
	if raw == "" {
		return Result{Status: StatusMissing}
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return Result{Status: StatusMalformed, Reason: "malformed cookie"}
	}

	var d Data
	if err := json.Unmarshal([]byte(decoded), &d); err != nil {
		return Result{Status: StatusMalformed, Reason: "malformed cookie"}
	}
	if !d.IsAdmin || d.Timestamp == 0 || d.LoginTime == 0 || d.SessionID == "" {
		return Result{Status: StatusMalformed, Reason: "incomplete session"}
	}

	if now.UnixMilli()-d.Timestamp >= Lifetime.Milliseconds() {
		return Result{Status: StatusExpired, Reason: "inactive"}
	}

	return Result{Status: StatusValid, Data: &d}
}

// VerifyRequest runs Verify against the request's session cookie.
func VerifyRequest(r *http.Request, now time.Time) Result {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Result{Status: StatusMissing}
	}
	return Verify(cookie.Value, now)
}

// TimedOut applies the explicit poll rule: expired when the absolute cap
// (loginTime) or the inactivity cap (timestamp) has been crossed. Returns
// the reason when expired.
func (d Data) TimedOut(now time.Time) (bool, string) {
	ms := now.UnixMilli()
	if ms-d.LoginTime >= Lifetime.Milliseconds() {
		return true, "session lifetime exceeded"
	}
	if ms-d.Timestamp >= InactivityTimeout.Milliseconds() {
		return true, "inactive too long"
	}
	return false, ""
}

// Remaining reports how long the session has left under the absolute cap.
func (d Data) Remaining(now time.Time) time.Duration {
	left := Lifetime - time.Duration(now.UnixMilli()-d.LoginTime)*time.Millisecond
	if left < 0 {
		return 0
	}
	return left
}

// Write re-issues the session cookie with a sliding max-age of Lifetime.
// The JSON payload is urlencoded: raw JSON is not a legal cookie value.
func Write(w http.ResponseWriter, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes the session cookie (logout).
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// WriteError sets the short-lived login failure reason cookie.
// Reason codes: "missing", "invalid", "server".
func WriteError(w http.ResponseWriter, reason string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ErrorCookieName,
		Value:    reason,
		Path:     "/",
		MaxAge:   errorCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Present reports only whether the session cookie exists. The outer route
// gate uses this; it deliberately does not validate the payload.
func Present(r *http.Request) bool {
	_, err := r.Cookie(CookieName)
	return err == nil
}

package web

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const flashCookie = "clinic_flash"

// SetFlash stores a one-shot notice for the next page the client loads.
func SetFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c echo.Context) string {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

// RedirectWithNotice is the response to a successful form submission.
func RedirectWithNotice(c echo.Context, location, notice string) error {
	SetFlash(c, notice)
	return c.Redirect(http.StatusFound, location)
}

// Page is the body of a listing or form response: the named collections plus
// the pending notice.
func Page(c echo.Context, data echo.Map) error {
	if notice := PopFlash(c); notice != "" {
		data["notice"] = notice
	}
	return c.JSON(http.StatusOK, data)
}

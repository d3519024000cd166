package web

import (
	"github.com/labstack/echo/v4"
)

// IndexHandler serves the landing page: where each section of the clinic lives.
func IndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return Page(c, echo.Map{
			"name": "Clinic Records",
			"links": echo.Map{
				"patients":     "/patients",
				"doctors":      "/doctors",
				"appointments": "/appointments",
				"lab_results":  "/lab-results",
				"bills":        "/bills",
			},
		})
	}
}

package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"videoshare/api/handler"
	"videoshare/api/page"
)

var corsHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// NewServer builds the echo instance serving the JSON API and, when pages is
// non-nil, the browser UI.
func NewServer(logger echo.Logger, h *handler.Handler, pages *page.Pages) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	if logger != nil {
		e.Logger = logger
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: corsHeaders,
	}))

	h.Register(e.Group("/api"))

	// Paths of the hosted functions the first frontend called.
	fn := e.Group("/functions/v1")
	fn.GET("/get-videos", h.ListVideos)
	fn.POST("/upload-video", h.Upload)

	if pages != nil {
		if err := pages.Register(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

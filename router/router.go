package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	plotCtrl interface {
		Import(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Search(echo.Context) error
		Treatment(echo.Context) error
		Export(echo.Context) error
	},
	tuaiCtrl interface {
		State(echo.Context) error
		Set(echo.Context) error
		Legend(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	g := e.Group("/plots")
	g.POST("/import", plotCtrl.Import)
	g.GET("", plotCtrl.List)
	g.GET("/search", plotCtrl.Search)
	g.GET("/treatments/:tag", plotCtrl.Treatment)
	g.GET("/export", plotCtrl.Export)
	g.GET("/:id", plotCtrl.Get)

	t := e.Group("/tuai")
	t.GET("", tuaiCtrl.State)
	t.POST("", tuaiCtrl.Set)
	t.GET("/legend", tuaiCtrl.Legend)
	return e
}

package controller

import "github.com/labstack/echo/v4"

type PlotController interface {
	Import(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Search(c echo.Context) error
	Treatment(c echo.Context) error
	Export(c echo.Context) error
}

type TuaiController interface {
	State(c echo.Context) error
	Set(c echo.Context) error
	Legend(c echo.Context) error
}

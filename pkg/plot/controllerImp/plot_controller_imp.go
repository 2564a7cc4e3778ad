package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sawah/entities"
	"sawah/pkg/geojson"
	"sawah/pkg/plot/controller"
	"sawah/pkg/plot/repository"
	"sawah/pkg/plot/service"
)

const maxImportBytes = 20 << 20

type PlotCtrl struct{ svc service.PlotService }

func New(svc service.PlotService) *PlotCtrl { return &PlotCtrl{svc} }

var (
	_ controller.PlotController = (*PlotCtrl)(nil)
	_ controller.TuaiController = (*TuaiCtrl)(nil)
)

func (h *PlotCtrl) Import(c echo.Context) error {
	group := strings.TrimSpace(c.QueryParam("group"))
	file := strings.TrimSpace(c.QueryParam("file"))
	if group == "" || file == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "group and file required"})
	}
	b, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
	}
	if len(b) > maxImportBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "geojson too large"})
	}
	n, err := h.svc.Import(group, file, b)
	if err != nil {
		if geojson.IsDecodeError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"group": group, "file": file, "plots": n})
}

func (h *PlotCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.QueryParam("group"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *PlotCtrl) Get(c echo.Context) error {
	d, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, d)
}

func (h *PlotCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q required"})
	}
	out, err := h.svc.Search(q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *PlotCtrl) Treatment(c echo.Context) error {
	out, err := h.svc.ByTreatment(c.Param("tag"))
	if errors.Is(err, service.ErrUnknownTag) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *PlotCtrl) Export(c echo.Context) error {
	b, err := h.svc.Export()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, "application/geo+json", b)
}

func nonNil(ps []entities.Plot) []entities.Plot {
	if ps == nil {
		return []entities.Plot{}
	}
	return ps
}

package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sawah/entities"
	"sawah/pkg/plot/service"
	"sawah/pkg/ripeness"
)

type TuaiCtrl struct{ svc service.PlotService }

func NewTuai(svc service.PlotService) *TuaiCtrl { return &TuaiCtrl{svc} }

type fillOut struct {
	ID   string `json:"id"`
	Fill string `json:"fill"`
}

func (h *TuaiCtrl) State(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"active": h.svc.TuaiActive()})
}

// Set turns ripeness mode on or off. A body without "active" toggles.
func (h *TuaiCtrl) Set(c echo.Context) error {
	var body struct {
		Active *bool `json:"active"`
	}
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
		}
	}

	var (
		active bool
		plots  []entities.Plot
		err    error
	)
	if body.Active == nil {
		active, plots, err = h.svc.ToggleTuai()
	} else {
		active = *body.Active
		plots, err = h.svc.SetTuai(active)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	out := make([]fillOut, 0, len(plots))
	for _, p := range plots {
		out = append(out, fillOut{ID: p.PlotID, Fill: p.CurrentFill})
	}
	return c.JSON(http.StatusOK, map[string]any{"active": active, "plots": out})
}

func (h *TuaiCtrl) Legend(c echo.Context) error {
	pal := h.svc.Palette()
	type item struct {
		Category ripeness.Category `json:"category"`
		Color    string            `json:"color"`
	}
	out := make([]item, 0, len(ripeness.Categories)+1)
	for _, cat := range ripeness.Categories {
		if cat == ripeness.Ready {
			continue // never emitted by the default rule
		}
		out = append(out, item{Category: cat, Color: pal.ColorFor(cat)})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": out, "future": pal.Future})
}

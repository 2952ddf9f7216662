package schedule

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/schedule")
	g.GET("", h.GetSchedule)
	g.GET("/print", h.GetPrintSheet)
}

// An unparseable date yields an empty board with status 200; the calendar
// widget treats it the same as a day with no surgeries.
func (h *Handler) GetSchedule(c echo.Context) error {
	var date time.Time
	if raw := c.QueryParam("date"); raw != "" {
		var err error
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			return c.JSON(http.StatusOK, DaySchedule{Branches: []BranchSchedule{}})
		}
	}
	sched, err := h.svc.Project(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sched)
}

func (h *Handler) GetPrintSheet(c echo.Context) error {
	var date time.Time
	if raw := c.QueryParam("date"); raw != "" {
		var err error
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			return c.JSON(http.StatusOK, PrintSheet{Pages: []PrintPage{}})
		}
	}
	sheet, err := h.svc.PrintSheet(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sheet)
}

package day

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/opsched/opsched/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/days")
	g.GET("/upcoming", h.ListUpcoming)
	g.POST("/:id/toggle-editable", h.ToggleEditable, auth.RequireSuperuser())
}

func (h *Handler) ListUpcoming(c echo.Context) error {
	days, err := h.svc.UpcomingDays(c.Request().Context(), 30)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, days)
}

func (h *Handler) ToggleEditable(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.ToggleEditable(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "surgery day not found")
	}
	return c.JSON(http.StatusOK, d)
}

package roster

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/opsched/opsched/internal/platform/auth"
	"github.com/opsched/opsched/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := auth.RequireRole("admin")

	b := api.Group("/branches")
	b.GET("", h.ListBranches)
	b.POST("", h.CreateBranch, admin)
	b.GET("/:id", h.GetBranch)
	b.PUT("/:id", h.UpdateBranch, admin)
	b.DELETE("/:id", h.DeleteBranch, admin)
	b.GET("/:id/surgeons", h.ListBranchSurgeons)

	s := api.Group("/surgeons")
	s.GET("", h.ListSurgeons)
	s.POST("", h.CreateSurgeon, admin)
	s.GET("/:id", h.GetSurgeon)
	s.PUT("/:id", h.UpdateSurgeon, admin)
	s.DELETE("/:id", h.DeleteSurgeon, admin)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrBranchNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "branch not found")
	case errors.Is(err, ErrSurgeonNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "surgeon not found")
	case errors.Is(err, ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, "duplicate value")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) ListBranches(c echo.Context) error {
	branches, err := h.svc.ListBranches(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if branches == nil {
		branches = []*Branch{}
	}
	return c.JSON(http.StatusOK, branches)
}

func (h *Handler) CreateBranch(c echo.Context) error {
	var b Branch
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateBranch(c.Request().Context(), &b); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBranch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBranch(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBranch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var b Branch
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	b.ID = id
	if err := h.svc.UpdateBranch(c.Request().Context(), &b); err != nil {
		if errors.Is(err, ErrBranchNotFound) || errors.Is(err, ErrDuplicate) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBranch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBranch(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListBranchSurgeons(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	surgeons, err := h.svc.SurgeonsForBranch(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	if surgeons == nil {
		surgeons = []*Surgeon{}
	}
	return c.JSON(http.StatusOK, surgeons)
}

func (h *Handler) ListSurgeons(c echo.Context) error {
	p := pagination.FromContext(c)
	surgeons, total, err := h.svc.ListSurgeons(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	if surgeons == nil {
		surgeons = []*Surgeon{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(surgeons, total, p.Limit, p.Offset))
}

func (h *Handler) CreateSurgeon(c echo.Context) error {
	var s Surgeon
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateSurgeon(c.Request().Context(), &s); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetSurgeon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	s, err := h.svc.GetSurgeon(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) UpdateSurgeon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var s Surgeon
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	s.ID = id
	if err := h.svc.UpdateSurgeon(c.Request().Context(), &s); err != nil {
		if errors.Is(err, ErrSurgeonNotFound) || errors.Is(err, ErrDuplicate) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSurgeon(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteSurgeon(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

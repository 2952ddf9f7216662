package surgery

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/opsched/opsched/internal/domain/roster"
	"github.com/opsched/opsched/internal/platform/auth"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/branches/:id/surgeries", h.Create)

	g := api.Group("/surgeries")
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/move", h.Move, auth.RequireSuperuser())
	g.POST("/renumber", h.Renumber)

	api.GET("/surgery-names", h.SearchNames)
	api.GET("/surgery-types", h.SearchTypes)
}

// opResult is the wire shape of the move and renumber endpoints.
type opResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func httpError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "surgery not found")
	case errors.Is(err, roster.ErrBranchNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "branch not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) Create(c echo.Context) error {
	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid branch id")
	}

	var date time.Time
	if raw := c.QueryParam("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
	}

	var cmd SaveSurgeryCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sg, err := h.svc.Create(c.Request().Context(), branchID, date, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sg)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sg)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cmd SaveSurgeryCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sg, err := h.svc.Update(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sg)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type moveRequest struct {
	SurgeryID    uuid.UUID `json:"surgery_id"`
	BranchNumber int       `json:"branch_number"`
	SeqNumber    int       `json:"seq_number"`
}

// Move reports failures in the response body with status 200, the reorder
// widget reads the success flag rather than the status code.
func (h *Handler) Move(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, opResult{Error: "invalid request body"})
	}
	if err := h.svc.Move(c.Request().Context(), req.SurgeryID, req.BranchNumber, req.SeqNumber); err != nil {
		return c.JSON(http.StatusOK, opResult{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, opResult{Success: true})
}

type renumberRequest struct {
	Items []SeqAssignment `json:"items"`
}

func (h *Handler) Renumber(c echo.Context) error {
	var req renumberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, opResult{Error: "invalid request body"})
	}
	if err := h.svc.Renumber(c.Request().Context(), req.Items); err != nil {
		return c.JSON(http.StatusOK, opResult{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, opResult{Success: true})
}

func (h *Handler) SearchNames(c echo.Context) error {
	names, err := h.svc.SearchNames(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return httpError(err)
	}
	if names == nil {
		names = []*SurgeryName{}
	}
	return c.JSON(http.StatusOK, names)
}

func (h *Handler) SearchTypes(c echo.Context) error {
	types, err := h.svc.SearchTypes(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return httpError(err)
	}
	if types == nil {
		types = []*SurgeryType{}
	}
	return c.JSON(http.StatusOK, types)
}

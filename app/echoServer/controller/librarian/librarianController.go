package librarian

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"schooldesk/app/echoServer/jwtx"
	ls "schooldesk/service/library"
)

type Controller struct {
	Svc ls.Service
	Log *slog.Logger
}

// Dashboard
// @Summary      Librarian dashboard
// @Description  Catalog, recent issues and derived stats in one snapshot
// @Tags         librarian
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/librarian/dashboard [get]
func (h *Controller) Dashboard(c echo.Context) error {
	snap, err := h.Svc.Snapshot(c.Request().Context())
	if err != nil {
		h.Log.Error("librarian snapshot", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":  ls.ComputeStats(snap),
		"books":  snap.Books,
		"issues": snap.Issues,
	})
}

// Approve
// @Summary      Approve a book issue request
// @Tags         librarian
// @Produce      json
// @Param        id  path  int  true  "Issue ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any "issue not found"
// @Failure      409  {object}  map[string]any "wrong state, quota or no copies"
// @Router       /v1/librarian/issues/{id}/approve [post]
func (h *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	staffID := jwtx.UserID(c)

	snap, err := h.Svc.Approve(c.Request().Context(), id, staffID)
	if err != nil {
		h.Log.Error("issue approve", "issue_id", id, "err", err)
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "issue not found"})
		case ls.ErrNotRequested:
			return c.JSON(http.StatusConflict, echo.Map{"message": "issue is not in requested state"})
		case ls.ErrOutOfStock:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no copies available"})
		case ls.ErrQuotaExceeded:
			return c.JSON(http.StatusConflict, echo.Map{"message": "student has reached the issue limit"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "approved",
		"stats":   ls.ComputeStats(snap),
		"books":   snap.Books,
		"issues":  snap.Issues,
	})
}

// Return
// @Summary      Mark an issued book returned
// @Tags         librarian
// @Produce      json
// @Param        id  path  int  true  "Issue ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any "issue not found"
// @Failure      409  {object}  map[string]any "issue not issued"
// @Router       /v1/librarian/issues/{id}/return [post]
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	snap, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("issue return", "issue_id", id, "err", err)
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "issue not found"})
		case ls.ErrNotIssued:
			return c.JSON(http.StatusConflict, echo.Map{"message": "issue is not in issued state"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "returned",
		"stats":   ls.ComputeStats(snap),
		"books":   snap.Books,
		"issues":  snap.Issues,
	})
}

package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"schooldesk/model"
	as "schooldesk/service/admin"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Dashboard
// @Summary      Admin settings dashboard
// @Description  User counts per role, catalog totals and current settings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/admin/dashboard [get]
func (h *Controller) Dashboard(c echo.Context) error {
	snap, err := h.Svc.Snapshot(c.Request().Context())
	if err != nil {
		h.Log.Error("admin snapshot", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, snap)
}

// UpdateSettings
// @Summary      Update school settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        payload  body  UpdateSettingsReq  true  "Settings payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /v1/admin/settings [put]
func (h *Controller) UpdateSettings(c echo.Context) error {
	var req UpdateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.UpdateSettings(c.Request().Context(), model.SchoolSettings{
		SchoolName:         req.SchoolName,
		AcademicYear:       req.AcademicYear,
		LoanPeriodDays:     req.LoanPeriodDays,
		MaxBooksPerStudent: req.MaxBooksPerStudent,
	})
	if err != nil {
		h.Log.Error("settings update", "err", err)
		if as.Code(err) == as.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid settings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": out})
}

// CreateBook
// @Summary      Add a book to the catalog
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateBookReq  true  "Book payload"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any "duplicate title/author"
// @Router       /v1/admin/books [post]
func (h *Controller) CreateBook(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	id, err := h.Svc.CreateBook(c.Request().Context(), req.Title, req.Author, req.Copies)
	if err != nil {
		h.Log.Error("book create", "err", err)
		switch as.Code(err) {
		case as.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book already exists"})
		case as.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// AddCopies
// @Summary      Add copies of an existing book
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  int           true  "Book ID"
// @Param        payload  body  AddCopiesReq  true  "Copies payload"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any "book not found"
// @Router       /v1/admin/books/{id}/copies [post]
func (h *Controller) AddCopies(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddCopiesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.AddCopies(c.Request().Context(), id, req.Count); err != nil {
		h.Log.Error("add copies", "book_id", id, "err", err)
		switch as.Code(err) {
		case as.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case as.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"added": req.Count})
}

package counselor

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"schooldesk/app/echoServer/jwtx"
	cs "schooldesk/service/counseling"
)

type Controller struct {
	Svc cs.Service
	Log *slog.Logger
}

// Dashboard
// @Summary      Counselor dashboard
// @Description  The acting counselor's request queue with derived stats
// @Tags         counselor
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/counselor/dashboard [get]
func (h *Controller) Dashboard(c echo.Context) error {
	counselorID := jwtx.UserID(c)
	snap, err := h.Svc.Snapshot(c.Request().Context(), counselorID)
	if err != nil {
		h.Log.Error("counselor snapshot", "counselor_id", counselorID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":    cs.ComputeStats(snap),
		"requests": snap.Requests,
	})
}

// Accept
// @Summary      Accept a pending counseling request
// @Tags         counselor
// @Produce      json
// @Param        id  path  int  true  "Request ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any "request owned by another counselor"
// @Failure      404  {object}  map[string]any "request not found"
// @Failure      409  {object}  map[string]any "request not pending"
// @Router       /v1/counselor/requests/{id}/accept [post]
func (h *Controller) Accept(c echo.Context) error {
	return h.transition(c, "accepted", h.Svc.Accept)
}

// Complete
// @Summary      Complete an accepted counseling request
// @Tags         counselor
// @Produce      json
// @Param        id  path  int  true  "Request ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any "request owned by another counselor"
// @Failure      404  {object}  map[string]any "request not found"
// @Failure      409  {object}  map[string]any "request not accepted"
// @Router       /v1/counselor/requests/{id}/complete [post]
func (h *Controller) Complete(c echo.Context) error {
	return h.transition(c, "completed", h.Svc.Complete)
}

func (h *Controller) transition(
	c echo.Context,
	done string,
	op func(ctx context.Context, requestID, counselorID int64) (*cs.Snapshot, error),
) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	counselorID := jwtx.UserID(c)

	snap, err := op(c.Request().Context(), id, counselorID)
	if err != nil {
		h.Log.Error("counseling transition", "request_id", id, "err", err)
		switch cs.Code(err) {
		case cs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		case cs.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case cs.ErrNotPending, cs.ErrNotAccepted:
			return c.JSON(http.StatusConflict, echo.Map{"message": "request is not in the required state"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  done,
		"stats":    cs.ComputeStats(snap),
		"requests": snap.Requests,
	})
}

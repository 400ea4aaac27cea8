package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/ports"
)

// DataHandler serves the full data snapshot the client boots from.
type DataHandler struct {
	service ports.DataService
}

func NewDataHandler(service ports.DataService) *DataHandler {
	return &DataHandler{service: service}
}

// All handles GET /data/all.
//
// @Summary      Fetch every entity in one snapshot
// @Tags         data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Snapshot
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /data/all [get]
func (h *DataHandler) All(c echo.Context) error {
	snapshot, err := h.service.Snapshot(c.Request().Context())
	if err != nil {
		return fail("error fetching initial data", err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

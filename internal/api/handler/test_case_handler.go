package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/ports"
)

// TestCaseHandler handles the test case lifecycle endpoints.
type TestCaseHandler struct {
	service ports.TestCaseService
}

func NewTestCaseHandler(service ports.TestCaseService) *TestCaseHandler {
	return &TestCaseHandler{service: service}
}

// Create handles POST /test-cases.
//
// @Summary      Create a test case
// @Tags         test-cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTestCaseRequest  true  "Test case"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /test-cases [post]
func (h *TestCaseHandler) Create(c echo.Context) error {
	var req createTestCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateTestCaseInput{
		ProjectID:    req.ProjectID,
		TemplateID:   req.TypeID,
		AssignedToID: req.AssignedTo,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return fail("error creating test case", err)
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "test case created successfully", ID: id})
}

// Pause handles PUT /test-cases/:id/pause.
//
// @Summary      Pause a test case and store its progress
// @Tags         test-cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Test case id"
// @Param        body  body      pauseTestCaseRequest  true  "Saved progress"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /test-cases/{id}/pause [put]
func (h *TestCaseHandler) Pause(c echo.Context) error {
	var req pauseTestCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Pause(c.Request().Context(), c.Param("id"), req.PausedState); err != nil {
		return fail("error pausing test case", err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "test case paused"})
}

// Resume handles PUT /test-cases/:id/resume.
//
// @Summary      Resume a paused test case
// @Tags         test-cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Test case id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /test-cases/{id}/resume [put]
func (h *TestCaseHandler) Resume(c echo.Context) error {
	if err := h.service.Resume(c.Request().Context(), c.Param("id")); err != nil {
		return fail("error resuming test case", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "test case resumed"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// ReportHandler handles report submission.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit handles POST /reports. The tester is always the authenticated caller.
//
// @Summary      Submit a test report and complete its test case
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Replay protection key"
// @Param        body             body      submitReportRequest  true   "Report"
// @Success      201              {object}  createdResponse
// @Success      200              {object}  createdResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /reports [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitReportInput{
		TestCaseID:     req.TestCaseID,
		TesterID:       identity.ID,
		Results:        req.ResultData,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return fail("error creating report", err)
	}

	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, createdResponse{Message: "report already submitted", ID: result.ReportID})
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "report created successfully", ID: result.ReportID})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/ports"
)

type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// Create handles POST /templates.
//
// @Summary      Create a custom test template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTemplateRequest  true  "Template"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		FormFields:  req.FormFields,
	})
	if err != nil {
		return fail("error creating template", err)
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "template created successfully", ID: id})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// CarreraController handles career endpoints
type CarreraController struct {
	carreraService services.CarreraService
}

// NewCarreraController creates a new CarreraController
func NewCarreraController(carreraService services.CarreraService) *CarreraController {
	return &CarreraController{carreraService: carreraService}
}

// List handles GET /carreras
func (c *CarreraController) List(ctx *gin.Context) {
	carreras, err := c.carreraService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, carreras)
}

// Create handles POST /carreras
func (c *CarreraController) Create(ctx *gin.Context) {
	var payload models.CarreraCreate
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	carrera, err := c.carreraService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, carrera)
}

// Update handles PUT /carreras/:id with a partial payload
func (c *CarreraController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.CarreraUpdate
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	carrera, err := c.carreraService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, carrera)
}

// Delete handles DELETE /carreras/:id
func (c *CarreraController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.carreraService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

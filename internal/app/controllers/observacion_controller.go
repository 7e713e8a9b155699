package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// ObservacionController handles observation endpoints
type ObservacionController struct {
	observacionService services.ObservacionService
}

// NewObservacionController creates a new ObservacionController
func NewObservacionController(observacionService services.ObservacionService) *ObservacionController {
	return &ObservacionController{observacionService: observacionService}
}

// List handles GET /observaciones
func (c *ObservacionController) List(ctx *gin.Context) {
	observaciones, err := c.observacionService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, observaciones)
}

// Create handles POST /observaciones
func (c *ObservacionController) Create(ctx *gin.Context) {
	var payload models.ObservacionPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	observacion, err := c.observacionService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, observacion)
}

// Update handles PUT /observaciones/:id
func (c *ObservacionController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.ObservacionPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	observacion, err := c.observacionService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, observacion)
}

// Delete handles DELETE /observaciones/:id
func (c *ObservacionController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.observacionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

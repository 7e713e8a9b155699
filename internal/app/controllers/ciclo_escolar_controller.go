package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// CicloEscolarController handles school cycle endpoints
type CicloEscolarController struct {
	cicloEscolarService services.CicloEscolarService
}

// NewCicloEscolarController creates a new CicloEscolarController
func NewCicloEscolarController(cicloEscolarService services.CicloEscolarService) *CicloEscolarController {
	return &CicloEscolarController{cicloEscolarService: cicloEscolarService}
}

// List handles GET /ciclos-escolares
func (c *CicloEscolarController) List(ctx *gin.Context) {
	ciclos, err := c.cicloEscolarService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ciclos)
}

// Create handles POST /ciclos-escolares
func (c *CicloEscolarController) Create(ctx *gin.Context) {
	var payload models.CicloEscolarPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	ciclo, err := c.cicloEscolarService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ciclo)
}

// Update handles PUT /ciclos-escolares/:id
func (c *CicloEscolarController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.CicloEscolarPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	ciclo, err := c.cicloEscolarService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ciclo)
}

// Delete handles DELETE /ciclos-escolares/:id
func (c *CicloEscolarController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.cicloEscolarService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

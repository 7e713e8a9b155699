package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// CuentaController handles student account endpoints
type CuentaController struct {
	cuentaService services.CuentaService
}

// NewCuentaController creates a new CuentaController
func NewCuentaController(cuentaService services.CuentaService) *CuentaController {
	return &CuentaController{cuentaService: cuentaService}
}

// List handles GET /cuentas
func (c *CuentaController) List(ctx *gin.Context) {
	cuentas, err := c.cuentaService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cuentas)
}

// Create handles POST /cuentas
func (c *CuentaController) Create(ctx *gin.Context) {
	var payload models.CuentaPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	cuenta, err := c.cuentaService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, cuenta)
}

// Update handles PUT /cuentas/:id
func (c *CuentaController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.CuentaPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	cuenta, err := c.cuentaService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cuenta)
}

// Delete handles DELETE /cuentas/:id
func (c *CuentaController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.cuentaService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

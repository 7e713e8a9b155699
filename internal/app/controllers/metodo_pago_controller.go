package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// MetodoPagoController handles payment method endpoints
type MetodoPagoController struct {
	metodoPagoService services.MetodoPagoService
}

// NewMetodoPagoController creates a new MetodoPagoController
func NewMetodoPagoController(metodoPagoService services.MetodoPagoService) *MetodoPagoController {
	return &MetodoPagoController{metodoPagoService: metodoPagoService}
}

// List handles GET /metodos-pago
func (c *MetodoPagoController) List(ctx *gin.Context) {
	metodos, err := c.metodoPagoService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, metodos)
}

// Create handles POST /metodos-pago
func (c *MetodoPagoController) Create(ctx *gin.Context) {
	var payload models.MetodoPagoPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	metodo, err := c.metodoPagoService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, metodo)
}

// Update handles PUT /metodos-pago/:id
func (c *MetodoPagoController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.MetodoPagoPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	metodo, err := c.metodoPagoService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, metodo)
}

// Delete handles DELETE /metodos-pago/:id
func (c *MetodoPagoController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.metodoPagoService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

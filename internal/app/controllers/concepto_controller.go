package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// ConceptoController handles payment concept endpoints. The clave arrives
// percent-encoded and is bound decoded, so it may contain "/".
type ConceptoController struct {
	conceptoService services.ConceptoService
}

// NewConceptoController creates a new ConceptoController
func NewConceptoController(conceptoService services.ConceptoService) *ConceptoController {
	return &ConceptoController{conceptoService: conceptoService}
}

// List handles GET /conceptos
func (c *ConceptoController) List(ctx *gin.Context) {
	conceptos, err := c.conceptoService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, conceptos)
}

// Create handles POST /conceptos
func (c *ConceptoController) Create(ctx *gin.Context) {
	var payload models.ConceptoPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	concepto, err := c.conceptoService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, concepto)
}

// Update handles PUT /conceptos/:clave
func (c *ConceptoController) Update(ctx *gin.Context) {
	var payload models.ConceptoPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	concepto, err := c.conceptoService.Update(ctx, ctx.Param("clave"), payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, concepto)
}

// Delete handles DELETE /conceptos/:clave
func (c *ConceptoController) Delete(ctx *gin.Context) {
	if err := c.conceptoService.Delete(ctx, ctx.Param("clave")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// RolController handles role endpoints
type RolController struct {
	rolService services.RolService
}

// NewRolController creates a new RolController
func NewRolController(rolService services.RolService) *RolController {
	return &RolController{rolService: rolService}
}

// List handles GET /roles
func (c *RolController) List(ctx *gin.Context) {
	roles, err := c.rolService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, roles)
}

// Create handles POST /roles
func (c *RolController) Create(ctx *gin.Context) {
	var payload models.RolPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	rol, err := c.rolService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rol)
}

// Update handles PUT /roles/:id
func (c *RolController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.RolPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	rol, err := c.rolService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rol)
}

// Delete handles DELETE /roles/:id
func (c *RolController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.rolService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

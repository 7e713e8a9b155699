package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// UsuarioController handles user endpoints
type UsuarioController struct {
	usuarioService services.UsuarioService
}

// NewUsuarioController creates a new UsuarioController
func NewUsuarioController(usuarioService services.UsuarioService) *UsuarioController {
	return &UsuarioController{usuarioService: usuarioService}
}

// List handles GET /usuarios
func (c *UsuarioController) List(ctx *gin.Context) {
	usuarios, err := c.usuarioService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, usuarios)
}

// Create handles POST /usuarios
func (c *UsuarioController) Create(ctx *gin.Context) {
	var payload models.UsuarioPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	usuario, err := c.usuarioService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, usuario)
}

// Update handles PUT /usuarios/:id
func (c *UsuarioController) Update(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var payload models.UsuarioPayload
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	usuario, err := c.usuarioService.Update(ctx, id, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, usuario)
}

// Delete handles DELETE /usuarios/:id
func (c *UsuarioController) Delete(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.usuarioService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

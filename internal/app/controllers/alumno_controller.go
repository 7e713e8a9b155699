package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/middleware"
)

// AlumnoController handles student endpoints. Students are addressed by
// matricula.
type AlumnoController struct {
	alumnoService services.AlumnoService
}

// NewAlumnoController creates a new AlumnoController
func NewAlumnoController(alumnoService services.AlumnoService) *AlumnoController {
	return &AlumnoController{alumnoService: alumnoService}
}

// List handles GET /alumnos
func (c *AlumnoController) List(ctx *gin.Context) {
	alumnos, err := c.alumnoService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, alumnos)
}

// Create handles POST /alumnos
func (c *AlumnoController) Create(ctx *gin.Context) {
	var payload models.AlumnoCreate
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	alumno, err := c.alumnoService.Create(ctx, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, alumno)
}

// Update handles PUT /alumnos/:matricula with a partial payload
func (c *AlumnoController) Update(ctx *gin.Context) {
	var payload models.AlumnoUpdate
	if !middleware.BindJSON(ctx, &payload) {
		return
	}

	alumno, err := c.alumnoService.Update(ctx, ctx.Param("matricula"), payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, alumno)
}

// Delete handles DELETE /alumnos/:matricula
func (c *AlumnoController) Delete(ctx *gin.Context) {
	if err := c.alumnoService.Delete(ctx, ctx.Param("matricula")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

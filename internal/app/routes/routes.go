package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/controlescolar/escolar/internal/app/controllers"
	"github.com/controlescolar/escolar/internal/app/models/dto"
)

// Controllers bundles the resource controllers mounted by SetupRouter
type Controllers struct {
	Alumnos         *controllers.AlumnoController
	Carreras        *controllers.CarreraController
	CiclosEscolares *controllers.CicloEscolarController
	Cuentas         *controllers.CuentaController
	MetodosPago     *controllers.MetodoPagoController
	Conceptos       *controllers.ConceptoController
	Observaciones   *controllers.ObservacionController
	Roles           *controllers.RolController
	Usuarios        *controllers.UsuarioController
}

// crud is implemented by every resource controller
type crud interface {
	List(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// mount registers the four collection routes of a resource
func mount(group *gin.RouterGroup, path, param string, c crud) {
	r := group.Group(path)
	{
		r.GET("", c.List)
		r.POST("", c.Create)
		r.PUT("/:"+param, c.Update)
		r.DELETE("/:"+param, c.Delete)
	}
}

// SetupRouter configures all application routes under prefix. Identifiers are
// matched on the raw path so an escaped "/" stays inside one segment.
func SetupRouter(router *gin.Engine, prefix string, ctrl Controllers) {
	router.UseRawPath = true
	router.UnescapePathValues = true

	api := router.Group(prefix)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	mount(api, "/alumnos", "matricula", ctrl.Alumnos)
	mount(api, "/carreras", "id", ctrl.Carreras)
	mount(api, "/ciclos-escolares", "id", ctrl.CiclosEscolares)
	mount(api, "/cuentas", "id", ctrl.Cuentas)
	mount(api, "/metodos-pago", "id", ctrl.MetodosPago)
	mount(api, "/conceptos", "clave", ctrl.Conceptos)
	mount(api, "/observaciones", "id", ctrl.Observaciones)
	mount(api, "/roles", "id", ctrl.Roles)
	mount(api, "/usuarios", "id", ctrl.Usuarios)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithSeverity(dto.ErrorSeverityWarning),
		))
	})
}

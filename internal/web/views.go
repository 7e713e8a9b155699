package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/controlescolar/escolar/internal/client"
	"github.com/controlescolar/escolar/internal/web/router"
)

// errInvalidInput marks requests the shell refuses before calling the API
var errInvalidInput = errors.New("invalid input")

// source is one collection a view displays
type source struct {
	key   string
	fetch func(ctx context.Context) (any, error)
}

func listOf[T any](key string, list func(context.Context) ([]T, error)) source {
	return source{key: key, fetch: func(ctx context.Context) (any, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}}
}

// actions relays the screen's create/update/delete to one resource service
type actions struct {
	create func(ctx context.Context, body []byte) (any, error)
	update func(ctx context.Context, id string, body []byte) (any, error)
	remove func(ctx context.Context, id string) error
}

func crud[E, C, U any, K client.Key](res *client.Resource[E, C, U, K], parse func(string) (K, error)) *actions {
	return &actions{
		create: func(ctx context.Context, body []byte) (any, error) {
			var payload C
			if err := decode(body, &payload); err != nil {
				return nil, err
			}
			return res.Create(ctx, payload)
		},
		update: func(ctx context.Context, raw string, body []byte) (any, error) {
			id, err := parse(raw)
			if err != nil {
				return nil, err
			}
			var payload U
			if err := decode(body, &payload); err != nil {
				return nil, err
			}
			return res.Update(ctx, id, payload)
		},
		remove: func(ctx context.Context, raw string) error {
			id, err := parse(raw)
			if err != nil {
				return err
			}
			return res.Delete(ctx, id)
		},
	}
}

func numericID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q must be a positive integer", errInvalidInput, raw)
	}
	return id, nil
}

func naturalKey(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty identifier", errInvalidInput)
	}
	return raw, nil
}

// decode reads a JSON payload as is; field validation is left to the API
func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: request body is empty", errInvalidInput)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", errInvalidInput, err)
	}
	return nil
}

// view is what a route mounts: the collections it shows and its actions
type view struct {
	sources []source
	actions *actions
}

func buildViews(api *client.Client, rt *router.Router) map[string]view {
	return map[string]view{
		router.ViewInicio: {sources: []source{{key: "vistas", fetch: func(context.Context) (any, error) {
			return rt.Routes(), nil
		}}}},
		router.ViewAlumnos: {
			sources: []source{listOf("alumnos", api.Alumnos.List), listOf("carreras", api.Carreras.List)},
			actions: crud(api.Alumnos, naturalKey),
		},
		router.ViewCarreras: {
			sources: []source{listOf("carreras", api.Carreras.List)},
			actions: crud(api.Carreras, numericID),
		},
		router.ViewCiclosEscolares: {
			sources: []source{listOf("ciclos_escolares", api.CiclosEscolares.List)},
			actions: crud(api.CiclosEscolares, numericID),
		},
		router.ViewCuentas: {
			sources: []source{
				listOf("cuentas", api.Cuentas.List),
				listOf("ciclos", api.Ciclos.List),
				listOf("metodos_pago", api.MetodosPago.List),
				listOf("alumnos", api.Alumnos.List),
			},
			actions: crud(api.Cuentas, numericID),
		},
		router.ViewMetodosPago: {
			sources: []source{listOf("metodos_pago", api.MetodosPago.List)},
			actions: crud(api.MetodosPago, numericID),
		},
		router.ViewConceptos: {
			sources: []source{listOf("conceptos", api.Conceptos.List)},
			actions: crud(api.Conceptos, naturalKey),
		},
		router.ViewObservaciones: {
			sources: []source{listOf("observaciones", api.Observaciones.List), listOf("alumnos", api.Alumnos.List)},
			actions: crud(api.Observaciones, numericID),
		},
		router.ViewRoles: {
			sources: []source{listOf("roles", api.Roles.List)},
			actions: crud(api.Roles, numericID),
		},
		router.ViewUsuarios: {
			sources: []source{listOf("usuarios", api.Usuarios.List), listOf("roles", api.Roles.List)},
			actions: crud(api.Usuarios, numericID),
		},
	}
}

// load fetches every source of a view concurrently. The first failure
// cancels the remaining requests.
func load(ctx context.Context, sources []source) (gin.H, error) {
	results := make([]any, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			v, err := src.fetch(gctx)
			if err != nil {
				return fmt.Errorf("loading %s: %w", src.key, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make(gin.H, len(sources))
	for i, src := range sources {
		data[src.key] = results[i]
	}
	return data, nil
}

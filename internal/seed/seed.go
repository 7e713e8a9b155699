package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
)

// DefaultRoles are the roles every installation starts with
var DefaultRoles = []string{"admin", "alumno"}

// DefaultMetodosPago are the payment methods every installation starts with
var DefaultMetodosPago = []string{"Efectivo", "Transferencia"}

// DefaultConceptos are the payment concepts every installation starts with
var DefaultConceptos = []models.Concepto{
	{Clave: string(models.ConceptoUADEC), Descripcion: "Cuota UADEC", MontoDefault: 0, GeneraCuentaDefault: true},
	{Clave: string(models.ConceptoEscuela), Descripcion: "Cuota de la escuela", MontoDefault: 0, GeneraCuentaDefault: true},
}

// CreateDefaultData creates default roles, payment methods and concepts if
// they don't exist. Failures are collected and returned together.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (roles, payment methods, concepts)...")
	var finalErr error

	roles, err := repos.Roles.List(ctx)
	if err != nil {
		return err
	}
	existingRoles := make(map[string]bool, len(roles))
	for _, r := range roles {
		existingRoles[r.NombreRol] = true
	}
	for _, nombre := range DefaultRoles {
		if existingRoles[nombre] {
			continue
		}
		err := repos.Roles.Create(ctx, &models.Rol{NombreRol: nombre})
		if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
			lgr.Error().Err(err).Str("rol", nombre).Msg("Error creating default role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	metodos, err := repos.MetodosPago.List(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	existingMetodos := make(map[string]bool, len(metodos))
	for _, m := range metodos {
		existingMetodos[m.Nombre] = true
	}
	for _, nombre := range DefaultMetodosPago {
		if existingMetodos[nombre] {
			continue
		}
		err := repos.MetodosPago.Create(ctx, &models.MetodoPago{Nombre: nombre})
		if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
			lgr.Error().Err(err).Str("metodo", nombre).Msg("Error creating default payment method")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, c := range DefaultConceptos {
		concepto := c
		err := repos.Conceptos.Create(ctx, &concepto)
		if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
			lgr.Error().Err(err).Str("clave", c.Clave).Msg("Error creating default concept")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data is in place")
	}
	return finalErr
}

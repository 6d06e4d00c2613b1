// Package migration ejecuta las migraciones SQL del esquema con golang-migrate.
package migration

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registra el driver postgres
	_ "github.com/golang-migrate/migrate/v4/source/file"       // registra el source file://

	"github.com/tu-usuario/railparts-api/pkg/logger"
)

// Up aplica todas las migraciones pendientes. No hacer nada no es error.
func Up(dbURL, migrationsPath string, log *logger.Logger) error {
	log.Info().Str("path", migrationsPath).Msg("ejecutando migraciones")

	m, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("migraciones: sin cambios")
			return nil
		}
		return err
	}
	log.Info().Msg("migraciones aplicadas")
	return nil
}

// Down revierte la última migración aplicada.
func Down(dbURL, migrationsPath string, log *logger.Logger) error {
	log.Warn().Str("path", migrationsPath).Msg("revirtiendo última migración")

	m, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-1); err != nil {
		return err
	}
	log.Info().Msg("migración revertida")
	return nil
}

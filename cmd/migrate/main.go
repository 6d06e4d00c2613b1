// Aplica (o revierte con -down) las migraciones SQL del esquema.
//
//	go run ./cmd/migrate            # migra hasta la última versión
//	go run ./cmd/migrate -down      # revierte la última migración
package main

import (
	"flag"
	"os"

	"github.com/tu-usuario/railparts-api/internal/infrastructure/migration"
	"github.com/tu-usuario/railparts-api/pkg/config"
	"github.com/tu-usuario/railparts-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revierte la última migración en lugar de aplicar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	dbURL := cfg.DB.ConnectionString()
	path := config.MigrationsPath()

	if *down {
		err = migration.Down(dbURL, path, log)
	} else {
		err = migration.Up(dbURL, path, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("migración fallida")
		os.Exit(1)
	}
}

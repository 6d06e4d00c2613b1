// seed crea el usuario admin inicial y unos artículos de muestra.
//
// Uso: go run ./cmd/seed
// Idempotente: si el usuario o el artículo ya existe, lo deja como está.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/railparts-api/pkg/config"
	"github.com/tu-usuario/railparts-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
		log.Warn().Msg("SEED_ADMIN_PASSWORD no definido, usando password por defecto")
	}

	if existing, _ := userRepo.GetByUsername("admin"); existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de password")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Username:     "admin",
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("username", admin.Username).Msg("usuario admin creado")
	} else {
		log.Info().Msg("usuario admin ya existe")
	}

	samples := []struct {
		code, name, spec, location, unit string
		price                            string
		minStock, initial                int64
	}{
		{"REL-001", "Relé de señalización 24V", "24VDC, 2NA+2NC", "A-01-03", "EA", "18.50", 20, 120},
		{"CAB-014", "Cable de cobre 2.5mm²", "H07V-K, rollo 100m", "B-02-01", "m", "0.45", 500, 2400},
		{"FUS-102", "Fusible cilíndrico 10A", "10x38mm, gG", "A-03-07", "EA", "1.20", 50, 300},
		{"AIS-033", "Aislador de porcelana", "Línea aérea 3kV", "C-01-02", "EA", "12.00", 10, 45},
	}
	for _, s := range samples {
		if existing, _ := itemRepo.GetByCode(s.code); existing != nil {
			continue
		}
		now := time.Now()
		price, _ := decimal.NewFromString(s.price)
		item := &entity.Item{
			ID:            uuid.New().String(),
			Code:          s.code,
			Name:          s.name,
			Specification: s.spec,
			Location:      s.location,
			Unit:          s.unit,
			UnitPrice:     price,
			MinStock:      s.minStock,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		item.SetCounters(ledger.Counters{Closing: s.initial})
		if err := itemRepo.Create(item); err != nil {
			log.Fatal().Err(err).Str("code", s.code).Msg("crear artículo de muestra")
		}
		log.Info().Str("code", s.code).Msg("artículo de muestra creado")
	}

	log.Info().Msg("seed completado")
}

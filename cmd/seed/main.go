package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/worksafe-api/config"
	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	pginfra "github.com/oksasatya/worksafe-api/internal/infrastructure/postgres"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

type demoWorkstation struct {
	name, employee, department string
	distance                   int
	chair, footrest            bool
}

var demo = []demoWorkstation{
	{"Desk A-101", "Ana Souza", "Engineering", 60, true, true},
	{"Desk A-102", "Bruno Lima", "Engineering", 35, true, false},
	{"Desk B-201", "Carla Mendes", "Finance", 80, false, false},
	{"Desk B-202", "Diego Alves", "Finance", 55, false, true},
	{"Desk C-301", "Elisa Rocha", "Sales", 45, true, true},
	{"Desk C-302", "Felipe Costa", "Sales", 90, true, false},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{DSN: cfg.PostgresDSN()})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	repo := pginfra.NewWorkstationRepository(pool)
	for _, d := range demo {
		w, err := entity.NewWorkstation(d.name, d.employee, d.department, d.distance, d.chair, d.footrest)
		if err != nil {
			log.Fatalf("invalid demo workstation %q: %v", d.name, err)
		}
		if err := repo.Create(ctx, w); err != nil {
			log.Fatalf("failed to seed workstation %q: %v", d.name, err)
		}
		helpers.LogInfo(logger, "seeded workstation", logrus.Fields{
			"id":         w.ID,
			"name":       w.Name,
			"risk_level": w.RiskLevel().String(),
		})
	}
}

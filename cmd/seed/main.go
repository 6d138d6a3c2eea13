package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain/model"
	pg "hotspot-voucher-platform/internal/infra/db/postgres"
	"hotspot-voucher-platform/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	tariffRepo := pg.NewPostgresTariffRepo(pool)
	tariffUC := usecase.NewTariffUseCase(tariffRepo)
	settingRepo := pg.NewPostgresSettingRepo(pool, nil)
	settingUC := usecase.NewSettingUseCase(settingRepo)

	// If tariffs already exist, do nothing
	tariffs, err := tariffUC.List(ctx)
	if err != nil {
		log.Fatalf("list tariffs: %v", err)
	}
	if len(tariffs) > 0 {
		fmt.Printf("%d tariffs already present. No changes.\n", len(tariffs))
		for _, t := range tariffs {
			fmt.Printf("  - %s (bytes=%d, seconds=%d, price=%d CFA)\n", t.Name, t.DataBytes, t.DurationSeconds, t.PriceCFA)
		}
		return
	}

	// Seed a few sample tariffs for testing the purchase flow
	seed := []struct {
		Name    string
		Bytes   int64
		Seconds int64
		Price   int64
		Speed   string
	}{
		{"1 Heure", 1 << 30, 3600, 100, "2M/2M"},
		{"1 Jour", 5 << 30, 86400, 500, "4M/4M"},
		{"1 Semaine", 20 << 30, 7 * 86400, 2500, ""},
	}

	for _, s := range seed {
		t, err := tariffUC.Create(ctx, s.Name, s.Bytes, s.Seconds, s.Price, s.Speed)
		if err != nil {
			log.Fatalf("create tariff %q: %v", s.Name, err)
		}
		fmt.Printf("seeded: %s (id=%s, price=%d CFA)\n", t.Name, t.ID, t.PriceCFA)
	}

	defaults := map[string]string{
		model.SettingDiscountRate:  "10",
		model.SettingColumns:       "2",
		model.SettingCampayEnabled: "true",
	}
	for k, v := range defaults {
		if _, err := settingUC.Save(ctx, k, v); err != nil {
			log.Fatalf("save setting %q: %v", k, err)
		}
		fmt.Printf("seeded setting: %s=%s\n", k, v)
	}

	fmt.Println("✅ Seeding complete.")
}

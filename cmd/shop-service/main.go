package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strumworks/guitarshop/internal/config"
	"github.com/strumworks/guitarshop/internal/persist"
	"github.com/strumworks/guitarshop/internal/shop"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var gw shop.Gateway
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres pool: %v", err)
		}
		pg := persist.NewPGGateway(pool)
		if err := pg.Init(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		gw = pg
		log.Printf("[store] postgres backend")
	} else {
		gw = persist.NewFileGateway(cfg.DBFile)
		log.Printf("[store] file backend at %s", cfg.DBFile)
	}

	st, err := shop.Open(ctx, gw)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	r := newRouter(st)
	log.Printf("shop-service listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}

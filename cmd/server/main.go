package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/dracory/mysqlmanager"
	"github.com/dracory/mysqlmanager/shared/profile"
)

func main() {
	// Load configuration (flags override env)
	cfg, err := mysqlmanager.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store, err := profile.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		log.Fatalf("profile store error: %v", err)
	}
	defer store.Close()

	app := mysqlmanager.New(cfg, store)
	defer app.Wait()

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("mysqlmanager listening on %s (mount %s, store %s)", addr, cfg.BasePath, cfg.StoreDriver)
	if cfg.AuthJWTSecret == "" {
		slog.Warn("bearer authentication disabled; set AUTH_JWT_SECRET to enable it")
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath, app.Handler())

	// Wrap with request logging middleware
	handler := mysqlmanager.NewRequestLogger(slog.Default(), cfg.ActionParam)(mux)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

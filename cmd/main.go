package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/agent"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/ai"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/chat"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/config"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/tools"
)

func main() {
	cfg := config.Load()

	// --- DB (optional exchange log) ---
	var repo chat.Repo
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db ping error: %v", err)
		}
		if err := chat.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("db schema error: %v", err)
		}
		cancel()

		repo = chat.NewRepo(db)
		log.Println("[db] exchange log enabled")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Chat module wiring ---
	gateway := ai.NewGateway(cfg.AI)
	mdmClient := mdm.NewClient(cfg.MDMBaseURL, nil)
	toolSet := tools.NewSet(mdmClient)
	orchestrator := agent.New(gateway, toolSet, cfg.MaxSteps)
	chatService := chat.NewService(orchestrator, repo)
	chatHandler := chat.NewHandler(chatService)

	chat.RegisterRoutes(r, chatHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on :%s (mdm=%s backend=%s)", cfg.Port, mdmClient.BaseURL(), gateway.Backend())
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

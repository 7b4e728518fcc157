package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/skillpath/skillpath/internal/chat"       // Chat responder
	"github.com/skillpath/skillpath/internal/config"     // Internal config loader
	"github.com/skillpath/skillpath/internal/database"   // MySQL pool
	"github.com/skillpath/skillpath/internal/generator"  // Roadmap generation service
	"github.com/skillpath/skillpath/internal/handler"    // HTTP handlers
	"github.com/skillpath/skillpath/internal/queue"      // AMQP activity consumer
	"github.com/skillpath/skillpath/internal/repository" // Data access layer
	"github.com/skillpath/skillpath/internal/router"     // Internal router setup
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the public-catalogue cache.  A nil
	// client just means those layers are skipped.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	roadmaps := repository.NewRoadmapRepo(db)

	// Background consumer that turns roadmap activity events into the
	// activity log.  It reconnects on its own and never blocks requests.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity-consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Cfg:      cfg,
		Users:    users,
		Auth:     handler.NewAuthHandler(cfg, users, tokens, roadmaps),
		Roadmaps: handler.NewRoadmapHandler(roadmaps, users),
		Generate: handler.NewGenerateHandler(generator.New(config.LoadLLMConfig())),
		Chat:     handler.NewChatHandler(chat.NewTemplateResponder()),
		Redis:    rdb,
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

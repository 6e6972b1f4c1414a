package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akibahmed229/chess-engine/internal/config"
	"github.com/akibahmed229/chess-engine/internal/controller"
	"github.com/akibahmed229/chess-engine/internal/middleware"
	"github.com/akibahmed229/chess-engine/internal/service"
	"github.com/akibahmed229/chess-engine/internal/store"
	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	var archive *store.Archive
	if cfg.ArchiveDSN != "" {
		archive, err = store.Open(cfg.ArchiveDSN)
		if err != nil {
			log.WithError(err).Fatal("open archive")
		}
		log.Info("game archive enabled")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(logger.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameManager := service.NewGameManager(time.Duration(cfg.ClockSeconds)*time.Second, archive)
	go gameManager.ProcessMatchmaking(ctx)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.AllowOrigins},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/wait", gameController.WaitForMatch)
	gameRoutes.Get("/archive", gameController.ListArchive)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown server")
		}
	}()

	log.WithField("addr", cfg.Addr).Info("server listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

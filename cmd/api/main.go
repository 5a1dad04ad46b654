package main

import (
	"log"

	"pollbox/config"
	"pollbox/internal/handler"
	"pollbox/internal/redis"
	"pollbox/internal/repository"
	"pollbox/internal/server"
	"pollbox/internal/services"
	"pollbox/pkg/database"
	"pollbox/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Redis for the poll listing cache
	redis.Initialize(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	cache := redis.NewCacheStore(redis.GetClient(), redis.DefaultCacheConfig())

	userRepo := repository.NewUserRepository(database.DB)
	pollRepo := repository.NewPollRepository(database.DB)
	voteRepo := repository.NewVoteRepository(database.DB)

	policy := services.NewPolicy(cfg.AdminEmails)
	authService := services.NewAuthService(userRepo, cfg)
	pollService := services.NewPollService(pollRepo, userRepo, policy, cache, l)
	voteService := services.NewVoteService(voteRepo, pollRepo, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Poll: handler.NewPollHandler(pollService),
		Vote: handler.NewVoteHandler(voteService),
	}, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to shut down cleanly: %v", err)
	}
}

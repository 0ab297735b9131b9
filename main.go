package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mengblog/database"
	"mengblog/middlewares"
	"mengblog/route"
	"mengblog/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := storage.Init(); err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("index setup failed")
	}
	cancel()

	router := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimit := middlewares.NewRateLimiter(1000, time.Minute)
	router.Use(rateLimit.Middleware())

	route.Register(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Info().Str("port", port).Msg("server starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

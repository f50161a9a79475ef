package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"healthbot/config"
	"healthbot/internal/app"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}

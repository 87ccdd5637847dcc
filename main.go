// @title Guidly API
// @version 1.0
// @description Backend for the Guidly homework feedback platform.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"guidly_backend/internal/app"
	"guidly_backend/internal/config"
	"guidly_backend/pkg/configwatcher"
	"log"
)

func main() {
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)

	go configwatcher.WatchConfig(*configPath, application.ReloadConfig)

	application.Run()
}

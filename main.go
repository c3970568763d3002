// file: main.go
package main

import (
	"log"

	"github.com/IkedaLab-Daniel/BambaCTF/config"
	"github.com/IkedaLab-Daniel/BambaCTF/database"
	"github.com/IkedaLab-Daniel/BambaCTF/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database.Connect(cfg)
	database.InitRedis(cfg)
	database.MigrateTables()

	r := routes.SetupRouter()

	log.Printf("Starting server on :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

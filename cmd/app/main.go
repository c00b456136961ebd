package main

import (
	"log"

	"TestBridge-Backend/cmd/config"
	migration "TestBridge-Backend/cmd/database/migrate"
	"TestBridge-Backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	server, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to setup app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	if err := server.Listen(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

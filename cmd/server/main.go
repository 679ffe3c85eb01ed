package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"disc-score/internal/config"
	"disc-score/internal/db"
	"disc-score/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		opened, err := db.Open()
		if err != nil {
			log.Fatalf("database open failed: %v", err)
		}
		if err := db.Migrate(opened); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		tunePool(opened, cfg)
		conn = opened
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	log.Printf("disc-score server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

func tunePool(conn *gorm.DB, cfg config.Config) {
	sqlDB, err := conn.DB()
	if err != nil {
		log.Printf("failed to access sql pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
}

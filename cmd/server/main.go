package main

import (
	"net/http"
	"os"

	"github.com/msuss/codenames/internal/config"
	"github.com/msuss/codenames/internal/db"
	"github.com/msuss/codenames/internal/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		conn, err = db.Open()
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if err := db.Configure(conn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeSeconds, cfg.DBConnMaxIdleTimeSeconds); err != nil {
			log.Fatal().Err(err).Msg("database pool configuration failed")
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, history persistence disabled")
	}

	srv := server.New(conn, cfg)
	log.Info().Str("addr", addr).Msg("codenames server listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

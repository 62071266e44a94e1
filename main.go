package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/josephgh/frogtrap/internal/game"
	"github.com/josephgh/frogtrap/internal/httpserver"
	"github.com/josephgh/frogtrap/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DATABASE_PATH", "./data/frogtrap.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	// Board shape served to every new session; the front-end renders
	// whatever dimensions we hand back from /game/new.
	cfg := game.Config{
		Rows:         envInt("GRID_ROWS", 11),
		Cols:         envInt("GRID_COLS", 11),
		MinObstacles: envInt("INITIAL_OBSTACLES_MIN", 0),
		MaxObstacles: envInt("INITIAL_OBSTACLES_MAX", 0),
		Seed:         int64(envInt("BOARD_SEED", 0)),
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, cfg)
	port := getEnv("PORT", "5000")
	log.Info().Str("port", port).Int("rows", cfg.Rows).Int("cols", cfg.Cols).Msg("starting frogtrap server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

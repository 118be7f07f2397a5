package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/store/gormstore"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	initLogger(cfg.Env)

	if cfg.Env == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Connect(cfg.Postgres.DSN())

	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Msg("connected to postgres")

	r := router.New(router.Deps{
		Store:          gormstore.New(conn),
		Tokens:         auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL),
		AllowedOrigins: cfg.Origins(),
	})

	log.Info().Str("addr", cfg.Addr()).Msg("starting server")

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func initLogger(env string) {
	if env == config.EnvDev {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.NewConsoleWriter())
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("dbtool failed")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"momoapi/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: go run tools/momo_provision.go <callback-host>")
		os.Exit(1)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	f, err := config.NewFactory() // reads MOMO_SUBSCRIPTION_KEY from env or .env
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	sandbox, err := f.Sandbox()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create sandbox client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	creds, err := sandbox.ProvisionUser(ctx, os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to provision api user")
	}
	fmt.Printf("MOMO_API_USER=%s\nMOMO_API_KEY=%s\n", creds.APIUser, creds.APIKey)
}

// Command manopt runs projected gradient descent on the Stiefel manifold
// for a choice of built-in problems.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := Execute(ctx, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("manopt failed")
		cancel()
		os.Exit(1)
	}
}

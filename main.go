package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vesper/internal/config"
	"vesper/internal/history"
	"vesper/internal/ui"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
	}

	dbConn, dbErr := history.Open()
	if dbErr != nil {
		log.Warn().Err(dbErr).Msg("history database unavailable")
	}

	p := ui.NewProgram(cfg.Settings(), dbConn, dbErr)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
	if dbConn != nil {
		_ = dbConn.Close()
	}
}

// setupLogging sends zerolog to a file; stdout belongs to the TUI.
func setupLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("VESPER_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dir, err := config.Dir()
	if err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "vesper.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = log.Output(f)
}

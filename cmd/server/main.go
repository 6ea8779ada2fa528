package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/campusops/lostfound/internal/api"
	"github.com/campusops/lostfound/internal/config"
	"github.com/campusops/lostfound/internal/database"
	"github.com/campusops/lostfound/internal/events"
	"github.com/campusops/lostfound/internal/seed"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	allowedOrigins stringSliceFlag
)

func main() {
	flag.StringVar(&addr, "addr", "localhost:8000", "server address")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[lostfound] ", log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file found, using environment variables")
	}

	cfg, err := config.NewConfig(addr, allowedOrigins)
	if err != nil {
		logger.Fatal("config: ", err)
	}

	dbConn, err := database.NewPgLostFoundRepository(logger, cfg.Database)
	if err != nil {
		logger.Fatal("db open: ", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close: ", err)
		}
	}()

	if err := dbConn.Migrate(cfg.Database.DropTablesFirst); err != nil {
		logger.Fatal("migrate: ", err)
	}

	if err := seed.Run(logger, dbConn); err != nil {
		logger.Fatal("seed: ", err)
	}

	mux := http.NewServeMux()

	hub := events.NewHub(logger)
	go hub.Run()

	srv := api.NewLostFoundApp(mux, logger, dbConn, hub, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutting down event hub...")
	hub.Shutdown()

	logger.Println("shutdown complete")
}

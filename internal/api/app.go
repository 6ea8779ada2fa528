package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/campusops/lostfound/internal/config"
	"github.com/campusops/lostfound/internal/database"
	"github.com/campusops/lostfound/internal/events"
	"github.com/gorilla/handlers"
)

type LostFoundApp struct {
	log            *log.Logger
	db             database.LostFoundRepository
	mux            *http.Server
	hub            *events.Hub
	signingKey     []byte
	tokenExp       time.Duration
	allowedOrigins []string
}

func NewLostFoundApp(mux *http.ServeMux, logger *log.Logger, db database.LostFoundRepository, hub *events.Hub, cfg *config.Config) *LostFoundApp {
	s := &LostFoundApp{
		log:            logger,
		db:             db,
		hub:            hub,
		signingKey:     cfg.Auth.SigningKey,
		tokenExp:       cfg.Auth.Expiration,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /auth/login", s.login)
	mux.Handle("GET /auth/logout", s.authMiddleware(s.logout))
	mux.HandleFunc("POST /users/add", s.addUser)
	mux.HandleFunc("GET /users/count", s.userCount)
	mux.HandleFunc("GET /categories/all", s.listCategories)
	mux.Handle("POST /items/report", s.authMiddleware(s.reportItem))
	mux.HandleFunc("GET /items", s.listItems)
	mux.HandleFunc("GET /items/{reference}", s.getItem)
	mux.Handle("POST /items/{reference}/claim", s.authMiddleware(s.claimItem))
	mux.Handle("POST /items/{reference}/collect", s.authMiddleware(s.collectItem))
	mux.Handle("GET /ws/events", s.authMiddleware(s.serveWs))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *LostFoundApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *LostFoundApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

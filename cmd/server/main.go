package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/api"
	"github.com/inamate/sketchpad/internal/auth"
	"github.com/inamate/sketchpad/internal/config"
	mw "github.com/inamate/sketchpad/internal/middleware"
	"github.com/inamate/sketchpad/internal/relay"
	"github.com/inamate/sketchpad/internal/storage"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var kv storage.WatchKV
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		kv = pg
	} else {
		slog.Warn("DATABASE_URL not set, scenes are kept in memory")
		kv = storage.NewMemory()
	}

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	sceneHandler := api.NewHandler(api.NewService(kv))

	hub := relay.NewHub(kv)
	hubCtx, stopHub := context.WithCancel(ctx)
	go hub.Run(hubCtx)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	// Auth routes (public)
	r.HandleFunc("/auth/context", authHandler.Context).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(authService.AuthMiddleware)

	apiRouter.HandleFunc("/scenes/{origin}", sceneHandler.Get).Methods("GET")
	apiRouter.HandleFunc("/scenes/{origin}", sceneHandler.Put).Methods("PUT")
	apiRouter.HandleFunc("/scenes/{origin}/render", sceneHandler.Render).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/scene/{origin}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, cfg.OriginPatterns())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mw.CORS(cfg.OriginPatterns())(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Disconnect relay clients first; hijacked connections are not
		// tracked by Shutdown.
		stopHub()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *relay.Hub, authSvc *auth.Service, originPatterns []string) {
	origin := mux.Vars(r)["origin"]

	token, err := auth.BearerToken(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if !claims.Allows(origin) {
		http.Error(w, "token not issued for this origin", http.StatusForbidden)
		return
	}

	hub.Serve(w, r, origin, claims.ContextID, originPatterns)
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"sleeping-queens-engine/internal/accounts"
	"sleeping-queens-engine/internal/api"
	"sleeping-queens-engine/internal/authn"
	"sleeping-queens-engine/internal/catalog"
	"sleeping-queens-engine/internal/config"
	"sleeping-queens-engine/internal/lobby"
	"sleeping-queens-engine/internal/middleware"
	"sleeping-queens-engine/internal/pipeline"
	"sleeping-queens-engine/internal/runtime"
	"sleeping-queens-engine/internal/store"
	"sleeping-queens-engine/internal/tracing"
	"sleeping-queens-engine/internal/transport/ws"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rootCtx := context.Background()
	shutdownTracing, err := tracing.InitTracer(rootCtx, tracing.Config{
		ServiceName: "sleeping-queens-engine",
		Environment: cfg.AppEnv,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := store.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open/migrate: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}()
	st := store.NewSQLiteStore(db)

	hubRef := ws.NewHubRef(ws.NewHub())
	go runHubSupervisor(hubRef)

	pl := pipeline.New(st, catalog.SecureShuffler{})
	pl.Config.DefenseWindow = cfg.DefenseWindow
	pl.Config.MoveDeadline = cfg.MoveDeadline
	games := runtime.NewGameManager(pl)
	lobbies := lobby.NewRegistry()
	users := accounts.NewDirectory()

	srv := api.NewServer(games, lobbies, users, hubRef, cfg)

	r := gin.Default()
	r.Use(otelgin.Middleware("sleeping-queens-engine"))
	r.Use(middleware.DevCORS(cfg))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	rg := r.Group("/api")
	protected := rg.Group("")
	protected.Use(authn.RequireAuth(cfg))
	srv.RegisterRoutes(rg, protected)

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %v", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	if h, ok := hubRef.Get(); ok && h != nil {
		h.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

// runHubSupervisor keeps a Hub running for the process lifetime, restarting
// it behind a fresh instance if Run panics, so one bad broadcast payload
// never takes every live game connection down with it.
func runHubSupervisor(hubRef *ws.HubRef) {
	for {
		panicked := false
		hub, ok := hubRef.Get()
		if !ok || hub == nil {
			time.Sleep(time.Second)
			hubRef.Set(ws.NewHub())
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					panicked = true
					log.Printf("hub.Run panic: %v\n%s", r, debug.Stack())
				}
			}()
			hub.Run()
		}()
		if !panicked {
			return
		}
		hub.Stop()
		hubRef.Set(ws.NewHub())
		time.Sleep(time.Second)
	}
}

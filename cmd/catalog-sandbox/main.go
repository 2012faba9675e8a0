package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeadmin/internal/config"
	applog "storeadmin/internal/log"
	"storeadmin/internal/sandbox"
)

func main() {
	cfg := config.Load()

	closeLog, err := applog.Init(cfg.LogLevel, "")
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	mem := sandbox.NewMemory()
	if err := sandbox.LoadSeed(mem, cfg.SandboxSeed); err != nil {
		log.Fatalf("seed: %v", err)
	}
	srv := sandbox.NewServer(mem, sandbox.NewFaults(applog.L().Named("sandbox")))

	httpServer := &http.Server{
		Addr:              ":" + cfg.SandboxPort,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("sandbox store API listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

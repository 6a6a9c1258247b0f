package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kestrelwm/modeshift/internal/config"
	"github.com/kestrelwm/modeshift/internal/daemon"
	"github.com/kestrelwm/modeshift/internal/ipc"
	"github.com/kestrelwm/modeshift/internal/x11"
)

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (fade out: %s, fade in: %s)", cfg.FadeOut(), cfg.FadeIn())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Logging.Level),
	}))

	// Connect to the X server
	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	display := x11.NewDisplay(conn, logger)
	manager := daemon.NewManager(conn, display, cfg, logger)

	log.Println("modeshift daemon started successfully")

	// Start IPC server
	ipcServer, err := ipc.NewServer(manager, display, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Drop engines whose windows vanished without an unmap we saw.
	reconciler := daemon.NewReconciler(cfg.ReconcileInterval(), manager, nil, logger)
	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	go reconciler.Run(reconcilerCtx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received %s, shutting down modeshift daemon...", sig)
		reconcilerCancel()
		ipcServer.Stop()
		manager.CloseAll()
		conn.Close()
		os.Exit(0)
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	conn.EventLoop()
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

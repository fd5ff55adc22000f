package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
	"github.com/brachisto/brachisto-go/internal/infrastructure/daemon"
	"github.com/brachisto/brachisto-go/internal/infrastructure/pidfile"
)

func main() {
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config file")
	resumeFlag := flag.Bool("resume", true, "Resume from the autosave slot if present")
	flag.Parse()

	fmt.Println("Brachisto Daemon v0.1.0")
	fmt.Println("=======================")

	cfg := config.MustLoadConfig(*configFlag)

	// Acquire PID file lock to prevent multiple instances
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
		fmt.Println("Force mode enabled - killing existing daemon...")
		if killErr := pf.KillExisting(); killErr != nil {
			log.Fatalf("Failed to kill existing daemon: %v", killErr)
		}
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg, *resumeFlag); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, resume bool) error {
	d, err := daemon.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if resume {
		if err := d.RestoreAutosave(ctx); err != nil {
			return fmt.Errorf("failed to resume autosave: %w", err)
		}
	}

	if cfg.Stream.Enabled {
		fmt.Printf("Streaming snapshots on ws://%s:%d%s\n", cfg.Stream.Host, cfg.Stream.Port, cfg.Stream.Path)
	}
	if cfg.Metrics.Enabled {
		fmt.Printf("Metrics on http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}
	fmt.Printf("Ticking every %s at sim speed %.2f\n", cfg.Daemon.TickInterval, cfg.Daemon.SimSpeed)

	return d.Run(ctx)
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fadedpez/youvibe/internal/config"
	"github.com/fadedpez/youvibe/internal/httpapi"
	"github.com/fadedpez/youvibe/internal/logging"
	"github.com/fadedpez/youvibe/pkg/broadcast"
	"github.com/fadedpez/youvibe/pkg/repositories/archive"
	notificationRepo "github.com/fadedpez/youvibe/pkg/repositories/notification"
	sessionRepo "github.com/fadedpez/youvibe/pkg/repositories/session"
	walletRepo "github.com/fadedpez/youvibe/pkg/repositories/wallet"
	"github.com/fadedpez/youvibe/pkg/scheduler"
	"github.com/fadedpez/youvibe/pkg/services/donation"
	"github.com/fadedpez/youvibe/pkg/services/identity"
	"github.com/fadedpez/youvibe/pkg/services/live"
	notificationService "github.com/fadedpez/youvibe/pkg/services/notification"
	"github.com/fadedpez/youvibe/pkg/services/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Default
	if cfg.IsDevelopment() {
		logger = logging.NewLogger(logging.DEBUG)
	}

	// Wallet storage: durable SQLite or volatile memory
	var wallets walletRepo.Repository
	if cfg.StorageType == "sqlite" {
		dbPath := filepath.Join(cfg.DataDir, "youvibe.db")
		log.Printf("Initializing SQLite wallet repository at %s", dbPath)
		sqliteRepo, err := walletRepo.NewSQLiteRepository(dbPath)
		if err != nil {
			log.Printf("Failed to initialize SQLite repository: %v", err)
			log.Println("Falling back to in-memory repository")
			wallets = walletRepo.NewMemoryRepository()
		} else {
			defer sqliteRepo.Close()
			wallets = sqliteRepo
		}
	} else {
		wallets = walletRepo.NewMemoryRepository()
		log.Println("Using in-memory wallet repository (balances will be lost on restart)")
	}

	registry := sessionRepo.NewRegistry()
	hub := broadcast.NewHub()
	notifications := notificationService.NewService(notificationRepo.NewMemoryRepository())
	identitySvc := identity.NewStubService()

	liveSvc := live.NewService(registry, hub)
	donationSvc := donation.NewService(registry, wallets, notifications, hub, identitySvc, payment.NewStubProvider())

	// Background tasks
	ctx := context.Background()

	sim := scheduler.NewViewerSimulator(registry, hub, cfg.ViewerSimInterval)
	sim.Start(ctx)

	var archiver *scheduler.DonationArchiveScheduler
	if cfg.ArchiveEnabled() {
		esConfig := archive.DefaultElasticsearchConfig()
		esConfig.Addresses = cfg.ESAddresses
		esArchive, err := archive.NewElasticsearchArchive(esConfig)
		if err != nil {
			log.Printf("Failed to initialize donation archive: %v", err)
		} else {
			archiver = scheduler.NewDonationArchiveScheduler(wallets, esArchive, cfg.ArchiveInterval)
			archiver.Start(ctx)
		}
	}

	server := httpapi.NewServer(liveSvc, donationSvc, wallets, notifications, identitySvc, hub, logger)

	go func() {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Printf("Server is running on %s. Press Ctrl+C to exit", cfg.HTTPAddr)

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	sim.Stop()
	if archiver != nil {
		archiver.Stop()
	}
	hub.Close()
}

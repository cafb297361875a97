package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/kofi-dx/NoxManage/internal/api/http"
	"github.com/kofi-dx/NoxManage/internal/config"
	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository/firestore"
	"github.com/kofi-dx/NoxManage/internal/security"
	"github.com/kofi-dx/NoxManage/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting NoxManage Payment Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	// Initialize Firestore
	ctx := context.Background()
	fsClient, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	store := firestore.NewStore(fsClient)
	defer store.Close()
	logger.Info("Firestore connection established", "project_id", cfg.Firestore.ProjectID)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Gateway
	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)
	verifier := paystack.NewSignatureVerifier(cfg.Paystack.SecretKey)

	// Plan catalog from the configured gateway plan codes
	catalog := domain.NewPlanCatalog(
		domain.ProductPlanCodes{
			Product33:  cfg.Paystack.ProductPlan33,
			Product73:  cfg.Paystack.ProductPlan73,
			Product183: cfg.Paystack.ProductPlan183,
		},
		domain.StorePlanCodes{
			Free:    cfg.Paystack.StorePlanFree,
			Basic:   cfg.Paystack.StorePlanBasic,
			Premium: cfg.Paystack.StorePlanPrem,
		},
	)

	policy := service.WithdrawalPolicy{
		MaxTransfer:    domain.MustParseMoney(cfg.Limits.MaxTransferAmount),
		PlatformFeePct: cfg.Limits.PlatformFeePct,
		DailyLimitPct:  cfg.Limits.DailyLimitPct,
	}

	// Initialize Services
	notifier := service.NewNotifier(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromName,
		cfg.SendGrid.FromEmail,
		cfg.SMS.URL,
		cfg.SMS.APIKey,
		cfg.SMS.Sender,
	)
	notifications := service.NewNotificationService(notifier)
	ledgerSvc := service.NewLedgerService(store.UserRepository, store.LedgerRepository)
	withdrawalSvc := service.NewWithdrawalService(
		store.UserRepository,
		store.StoreRepository,
		store.LedgerRepository,
		gateway,
		notifications,
		policy,
	)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.StoreRepository,
		store.UserRepository,
		store.ClientRepository,
		notifications,
	)
	checkoutSvc := service.NewCheckoutService(store.StoreRepository, gateway)
	subscriptionSvc := service.NewSubscriptionService(
		store.StoreRepository,
		store.UserRepository,
		gateway,
		catalog,
		notifications,
	)
	subaccountSvc := service.NewSubaccountService(store.UserRepository, store.StoreRepository, gateway)

	// Initialize HTTP handlers
	webhookHandler := httpapi.NewWebhookHandler(verifier, orderSvc, subscriptionSvc, withdrawalSvc)
	withdrawalHandler := httpapi.NewWithdrawalHandler(withdrawalSvc, ledgerSvc)
	orderHandler := httpapi.NewOrderHandler(orderSvc, checkoutSvc)
	subscriptionHandler := httpapi.NewSubscriptionHandler(subscriptionSvc, subaccountSvc)

	router := httpapi.NewRouter(tokenManager, webhookHandler, withdrawalHandler, orderHandler, subscriptionHandler)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

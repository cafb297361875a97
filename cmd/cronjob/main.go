package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kofi-dx/NoxManage/internal/config"
	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/jobs"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository/firestore"
	"github.com/kofi-dx/NoxManage/internal/scheduler"
	"github.com/kofi-dx/NoxManage/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sweep-expired-subscriptions', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting NoxManage Cronjob Runner...", "log_level", cfg.Log.Level)

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

	// Initialize Services
	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)
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
	notifier := service.NewNotifier(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromName,
		cfg.SendGrid.FromEmail,
		cfg.SMS.URL,
		cfg.SMS.APIKey,
		cfg.SMS.Sender,
	)
	notifications := service.NewNotificationService(notifier)
	subscriptionSvc := service.NewSubscriptionService(
		store.StoreRepository,
		store.UserRepository,
		gateway,
		catalog,
		notifications,
	)

	jobServices := &jobs.Services{
		Subscription: subscriptionSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "sweep-expired-subscriptions":
		jobRunner.SweepExpiredSubscriptions()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - sweep-expired-subscriptions\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/db"
	"github.com/danielhkuo/votesecure/handlers"
	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/notify"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.PingContext(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables) and reference data
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedConstituencies(ctx, dbConn, db.DefaultRegion, db.DefaultConstituencies); err != nil {
		slog.Error("constituency seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if err := handlers.EnsureAdmin(ctx, dbConn, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	pending, err := pendingStore(ctx, cfg)
	if err != nil {
		slog.Error("pending registration store failed", "error", err)
		os.Exit(1)
	}

	sender, err := emailSender(cfg)
	if err != nil {
		slog.Error("email sender failed", "error", err)
		os.Exit(1)
	}

	svc := handlers.NewServices(dbConn, cfg, pending, sender)

	// Elections also synchronize on dashboard loads; the loop covers idle periods
	if cfg.SyncInterval > 0 {
		go svc.Engine.Run(ctx, cfg.SyncInterval)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, svc)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// pendingStore keeps pending registrations in Redis when configured, else in memory
func pendingStore(ctx context.Context, cfg cliparse.Config) (registration.PendingStore, error) {
	if cfg.RedisURL == "" {
		slog.Info("Pending registrations kept in memory")
		return registration.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	slog.Info("Pending registrations kept in Redis", "addr", opts.Addr)
	return registration.NewRedisStore(client), nil
}

// emailSender sends through SMTP when configured, else logs messages
func emailSender(cfg cliparse.Config) (notify.Sender, error) {
	if cfg.SMTPHost == "" {
		slog.Warn("SMTP_HOST not set; emails will be logged, not sent")
		return notify.LogSender{}, nil
	}
	return notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

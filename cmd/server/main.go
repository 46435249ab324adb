package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/letterdesk/internal/api"
	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/config"
	"github.com/ignite/letterdesk/internal/genai"
	"github.com/ignite/letterdesk/internal/pkg/logger"
	"github.com/ignite/letterdesk/internal/prompt"
	"github.com/ignite/letterdesk/internal/repository/postgres"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func openDatabase(dbCfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := dbCfg.URL
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "connect_timeout") {
		dsn += sep + "connect_timeout=5"
	}
	logger.Info("connecting to database", "host", extractHost(dsn))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.RedactPII != nil {
		logger.SetRedactPII(*cfg.Logging.RedactPII)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		logger.Error("pre-flight check failed", "error", err.Error())
		os.Exit(1)
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Error("database unavailable", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; without it sessions live in process memory.
	var redisClient *redis.Client
	var sessionStore auth.SessionStore
	if cfg.Redis.Enabled && cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			logger.Warn("redis unavailable, using in-memory sessions", "addr", cfg.Redis.Addr, "error", err.Error())
			redisClient.Close()
			redisClient = nil
		} else {
			sessionStore = auth.NewRedisSessionStore(redisClient)
			logger.Info("redis connected", "addr", cfg.Redis.Addr)
		}
	}
	if sessionStore == nil {
		memStore := auth.NewMemorySessionStore()
		memStore.CleanupExpired(ctx, 5*time.Minute)
		sessionStore = memStore
	}

	var authManager *auth.Manager
	if cfg.Auth.Enabled && cfg.Auth.GoogleClientID != "" {
		baseURL := fmt.Sprintf("http://%s:%d", host, port)
		if envURL := os.Getenv("AUTH_BASE_URL"); envURL != "" {
			baseURL = envURL
		}
		authManager = auth.NewManager(cfg.Auth, sessionStore, baseURL)
		logger.Info("google oauth enabled", "callback", baseURL+"/auth/callback")
	} else {
		logger.Warn("authentication disabled")
	}

	repo := postgres.NewLetterRepo(db)
	letterService := letter.NewService(repo)

	promptBuilder, err := prompt.NewBuilder()
	if err != nil {
		logger.Error("prompt template invalid", "error", err.Error())
		os.Exit(1)
	}

	generator, err := genai.New(cfg.Generation)
	if err != nil {
		logger.Error("generation client init failed", "error", err.Error())
		os.Exit(1)
	}
	if cfg.Generation.Provider != "bedrock" && cfg.Generation.APIKey == "" {
		logger.Warn("generation API key not set, /api/generate will fail")
	}

	server := api.NewServer(cfg.Server, letterService, promptBuilder, generator, authManager, db, redisClient)

	addr := fmt.Sprintf("%s:%d", host, port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "provider", cfg.Generation.Provider)
		errCh <- server.ListenAndServe(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err.Error())
		os.Exit(1)
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("server stopped")
}

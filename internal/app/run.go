package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Flarenzy/subnetcalc/internal/auth"
	appdb "github.com/Flarenzy/subnetcalc/internal/db"
	"github.com/Flarenzy/subnetcalc/internal/domain"
	apihttp "github.com/Flarenzy/subnetcalc/internal/http"
)

type Config struct {
	Port          string
	DSN           string
	SessionSecret string
	SessionTTL    time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Auth          auth.Config
}

func LoadConfig() Config {
	// Local development keeps its settings in a .env file; a missing file is
	// fine, real environments set the variables directly.
	_ = godotenv.Load()

	cfg := Config{
		DSN:           os.Getenv("DB_CONN"),
		Port:          os.Getenv("PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    24 * time.Hour,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		Auth: auth.Config{
			Enabled:  os.Getenv("AUTH_ENABLED") == "true",
			Issuer:   os.Getenv("AUTH_ISSUER"),
			Audience: os.Getenv("AUTH_AUDIENCE"),
			JWKSURL:  os.Getenv("AUTH_JWKS_URL"),
		},
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("missing required environment variable: SESSION_SECRET")
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("invalid SESSION_TTL %q: %v", ttl, err)
		}
		cfg.SessionTTL = parsed
	}

	return cfg
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}

	return Serve(ctx, cfg, listener)
}

// Serve runs the API on an existing listener until ctx is cancelled.
// Split out from Run so tests can bind to an ephemeral port.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := appdb.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	sessions, err := auth.NewSessionManager([]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		return err
	}

	authenticator, err := auth.NewOIDCAuthenticator(cfg.Auth)
	if err != nil {
		return err
	}

	calculator := domain.NewLoggingCalculatorService(logger, domain.NewCalculatorService())
	history := domain.NewLoggingHistoryService(logger, domain.NewHistoryService(appdb.NewHistoryRepository(pool)))

	api := apihttp.NewAPI(logger, pool, calculator, history, sessions, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		fmt.Printf("Serving server on %s\n", listener.Addr())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Serve error: %s\n", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

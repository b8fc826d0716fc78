package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Flarenzy/subnetcalc/internal/auth"
	"github.com/Flarenzy/subnetcalc/internal/domain"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	Health        HealthChecker
	Calculator    domain.CalculatorService
	History       domain.HistoryService
	Sessions      *auth.SessionManager
	Authenticator auth.Authenticator
}

func NewAPI(
	logger *slog.Logger,
	health HealthChecker,
	calculator domain.CalculatorService,
	history domain.HistoryService,
	sessions *auth.SessionManager,
	authenticator auth.Authenticator,
) *API {
	return &API{
		Logger:        logger,
		Health:        health,
		Calculator:    calculator,
		History:       history,
		Sessions:      sessions,
		Authenticator: authenticator,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.HandleFunc("POST /api/ip-info", a.handleIPInfo)
	mux.HandleFunc("POST /api/subnetting", a.handleSubnetting)
	mux.HandleFunc("GET /api/history", a.handleHistory)
	mux.HandleFunc("GET /api/user", a.handleUser)
	mux.HandleFunc("GET /api/export", a.handleExport)
	mux.HandleFunc("POST /api/logout", a.handleLogout)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return a.bearerMiddleware(a.sessionMiddleware(mux))
}

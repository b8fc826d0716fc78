package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Flarenzy/subnetcalc/internal/auth"
	"github.com/Flarenzy/subnetcalc/internal/domain"
)

const defaultPrefix = 24

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.Error("db ping failed", "err", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Describe an IPv4 address within a prefix
// @Tags calculator
// @Accept json
// @Produce json
// @Param payload body IPInfoRequest true "Address and optional prefix"
// @Success 200 {object} CalculationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ip-info [post]
func (a *API) handleIPInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[IPInfoRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling ip-info request", "err", err.Error())
		err = encode(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	prefix := defaultPrefix
	if req.Prefix != nil {
		prefix = *req.Prefix
	}

	calc, err := a.Calculator.Describe(ctx, domain.DescribeInput{IP: req.IP, Prefix: prefix})
	if err != nil {
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
			resp = ErrorResponse{Error: userMessage(err)}
		} else {
			a.Logger.ErrorContext(ctx, "describing address", "ip", req.IP, "err", err.Error())
		}
		err = encode(w, r, status, resp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	resp := calculationToResponse(calc)
	a.recordHistory(ctx, domain.HistoryKindIPInfo, fmt.Sprintf("%s/%d", calc.Addr, calc.Prefix), resp)

	err = encode(w, r, http.StatusOK, resp)
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Split a network into equal subnets
// @Tags calculator
// @Accept json
// @Produce json
// @Param payload body SubnettingRequest true "Network and requested subnet count"
// @Success 200 {object} SubnettingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/subnetting [post]
func (a *API) handleSubnetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[SubnettingRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling subnetting request", "err", err.Error())
		err = encode(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	plan, err := a.Calculator.Split(ctx, domain.SplitInput{Network: req.Network, Subnets: req.Subnets})
	if err != nil {
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
			resp = ErrorResponse{Error: userMessage(err)}
		} else {
			a.Logger.ErrorContext(ctx, "splitting network", "network", req.Network, "err", err.Error())
		}
		err = encode(w, r, status, resp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	resp := planToResponse(plan)
	a.recordHistory(ctx, domain.HistoryKindSubnetting, fmt.Sprintf("%s into %d", plan.Parent, plan.Requested), resp)

	err = encode(w, r, http.StatusOK, resp)
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary List the caller's calculation history
// @Tags session
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/history [get]
func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		a.Logger.ErrorContext(ctx, "history requested without session")
		err := encode(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	entries, count, err := a.History.List(ctx, domain.SessionID(session.ID))
	if err != nil {
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrUnauthorized) {
			status = http.StatusUnauthorized
			resp = ErrorResponse{Error: "unauthorized"}
		} else {
			a.Logger.ErrorContext(ctx, "reading history", "session_id", session.ID, "err", err.Error())
		}
		err = encode(w, r, status, resp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	err = encode(w, r, http.StatusOK, HistoryResponse{History: historyToResponse(entries), Count: count})
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Describe the caller's session
// @Tags session
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user [get]
func (a *API) handleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := a.sessionInfo(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		errResp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrUnauthorized) {
			status = http.StatusUnauthorized
			errResp = ErrorResponse{Error: "unauthorized"}
		} else {
			a.Logger.ErrorContext(ctx, "describing session", "err", err.Error())
		}
		err = encode(w, r, status, errResp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	err = encode(w, r, http.StatusOK, resp)
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary Export the full session as a downloadable JSON file
// @Tags session
// @Produce json
// @Success 200 {object} ExportResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/export [get]
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	info, err := a.sessionInfo(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		errResp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrUnauthorized) {
			status = http.StatusUnauthorized
			errResp = ErrorResponse{Error: "unauthorized"}
		} else {
			a.Logger.ErrorContext(ctx, "describing session for export", "err", err.Error())
		}
		err = encode(w, r, status, errResp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	entries, _, err := a.History.List(ctx, domain.SessionID(info.SessionID))
	if err != nil {
		a.Logger.ErrorContext(ctx, "reading history for export", "session_id", info.SessionID, "err", err.Error())
		err = encode(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	filename := fmt.Sprintf("subnet-session-%.8s.json", info.SessionID)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err = encode(w, r, http.StatusOK, ExportResponse{
		Session:    info,
		History:    historyToResponse(entries),
		ExportedAt: time.Now().UTC(),
	})
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

// @Summary End the session and purge its history
// @Tags session
// @Success 204 "No content"
// @Failure 500 {object} ErrorResponse
// @Router /api/logout [post]
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		a.Logger.ErrorContext(ctx, "logout requested without session")
		err := encode(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	if err := a.History.Purge(ctx, domain.SessionID(session.ID)); err != nil {
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "internal server error"}
		if errors.Is(err, domain.ErrUnauthorized) {
			status = http.StatusUnauthorized
			resp = ErrorResponse{Error: "unauthorized"}
		} else {
			a.Logger.ErrorContext(ctx, "purging history on logout", "session_id", session.ID, "err", err.Error())
		}
		err = encode(w, r, status, resp)
		if err != nil {
			a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
		}
		return
	}

	http.SetCookie(w, a.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) sessionInfo(ctx context.Context) (UserResponse, error) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return UserResponse{}, errors.New("no session in context")
	}

	_, count, err := a.History.List(ctx, domain.SessionID(session.ID))
	if err != nil {
		return UserResponse{}, err
	}

	resp := UserResponse{
		SessionID: session.ID,
		CreatedAt: session.IssuedAt,
		Lookups:   count,
	}
	if principal, ok := auth.PrincipalFromContext(ctx); ok {
		resp.Authenticated = true
		resp.Subject = principal.Subject
	}

	return resp, nil
}

// recordHistory is best effort: a history failure never fails the calculation
// that produced it.
func (a *API) recordHistory(ctx context.Context, kind, input string, result any) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		a.Logger.ErrorContext(ctx, "marshaling history result", "kind", kind, "err", err.Error())
		return
	}

	_, err = a.History.Record(ctx, domain.SessionID(session.ID), domain.RecordInput{
		Kind:   kind,
		Input:  input,
		Result: raw,
	})
	if err != nil {
		a.Logger.ErrorContext(ctx, "recording history", "kind", kind, "err", err.Error())
	}
}

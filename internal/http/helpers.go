package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Flarenzy/subnetcalc/internal/domain"
)

func encode[T any](w http.ResponseWriter, _ *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// userMessage strips the sentinel prefix so the client sees the
// human-readable part of a validation error.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if errors.Is(err, domain.ErrInvalidInput) {
		msg = strings.TrimPrefix(msg, domain.ErrInvalidInput.Error())
		msg = strings.TrimPrefix(msg, ": ")
	}
	if msg == "" {
		msg = "bad request"
	}
	return msg
}

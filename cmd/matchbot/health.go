package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

const healthTimeout = 3 * time.Second

// healthHandler reports whether every dependency answers a ping
func healthHandler(checks map[string]func(ctx context.Context) error, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
				model.NewServiceUnavailableError(name + " unavailable").WriteJSON(w)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

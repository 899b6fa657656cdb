package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/angelmondragon/bakery-catalog/api/responses"
	"github.com/angelmondragon/bakery-catalog/pkg/config"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
)

const (
	envHeader          = "X-Bakery-Env"
	readyCheckTimeout  = 2 * time.Second
	checkStatusOK      = "ok"
	checkStatusFailing = "unavailable"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, healthResponse{Status: "live"})
	}
}

// HealthReady pings every dependency and answers 503 when any of them fails.
func HealthReady(cfg *config.Config, checks map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name, pinger := range checks {
		if pinger != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ready", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				resp.Checks[name] = checkStatusFailing
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, logger.Fields{"check": name, "error": err.Error()}), "health.not_ready")
				}
				continue
			}
			resp.Checks[name] = checkStatusOK
		}

		responses.WriteSuccessStatus(w, status, resp)
	}
}

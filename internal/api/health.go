// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/respond"
)

// Check is one dependency probed by the /ready endpoint.
type Check struct {
	// Name labels the dependency in the response, e.g. "postgres".
	Name string

	// Ping returns nil when the dependency is reachable.
	Ping func(ctx context.Context) error
}

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
//
// Only the dependencies the process was configured with are listed: a
// static-content deployment with no database reports ready with no checks.
type HealthDependencies struct {
	Checks []Check
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.dependencies.Checks))
	isSystemReady := true

	for _, check := range handler.dependencies.Checks {
		ctx, cancel := context.WithTimeout(request.Context(), constants.ReadinessTimeout)
		err := check.Ping(ctx)
		cancel()

		result := checkResult{Name: check.Name, IsOK: err == nil}
		if err != nil {
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", check.Name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldData: map[string]any{
			constants.FieldStatus: responseStatus,
			constants.FieldChecks: results,
		},
	})
}

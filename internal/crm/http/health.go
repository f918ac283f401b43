package http

import (
	"net/http"
	"time"

	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/crmsdk"
	"github.com/tallyhq/crm/pkg/httpx"
	"github.com/tallyhq/crm/pkg/jwtx"
)

// HealthHandler godoc
//
//	@Summary		Health Check
//	@Description	Simple liveness answer for load balancers and uptime monitors. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	crmsdk.HealthResponse	"status"
//	@Router			/v1/health [get].
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, crmsdk.HealthResponse{Status: "ok"})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check
//	@Description	Readiness probe checking the database connection and the signing keys. Answers 503 while either is unavailable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	crmsdk.ReadyzResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	crmsdk.ReadyzResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &crmsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, crmsdk.ReadyzResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

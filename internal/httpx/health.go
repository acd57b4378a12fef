package httpx

import (
	"log/slog"
	"net/http"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

// health probes the store; a failing probe reports 503 instead of an error.
func (a *api) health(w http.ResponseWriter, r *http.Request) {
	if _, err := a.st.Metrics(r.Context()); err != nil {
		a.log.Warn("health check degraded",
			slog.String("rid", utils.RID(r.Context())),
			slog.String("err", err.Error()))
		utils.WriteJSON(w, http.StatusServiceUnavailable, models.HealthFailure{Status: "unhealthy", Error: "Service unavailable"})
		return
	}
	now := a.opts.Now()
	utils.WriteJSON(w, http.StatusOK, models.Health{
		Status:      "healthy",
		Timestamp:   now.UTC().Format(TimestampLayout),
		Uptime:      now.Sub(a.opts.Started).Seconds(),
		Version:     a.opts.Version,
		Environment: a.opts.Environment,
	})
}


package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AngelCh415/marketing-dashboard/internal/store"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

// serveRead writes the result of load as JSON. Store failures are logged with
// their cause and answered with "Failed to fetch <resource>".
func serveRead[T any](a *api, w http.ResponseWriter, r *http.Request, resource string, maxAge int, load func(context.Context) (T, error)) {
	v, err := load(r.Context())
	if err != nil {
		a.log.Error("store read failed",
			slog.String("resource", resource),
			slog.String("rid", utils.RID(r.Context())),
			slog.String("err", err.Error()))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch "+resource)
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	utils.WriteJSON(w, http.StatusOK, v)
}

func (a *api) getMetrics(w http.ResponseWriter, r *http.Request) {
	serveRead(a, w, r, "metrics", 30, a.st.Metrics)
}

func (a *api) getCampaigns(w http.ResponseWriter, r *http.Request) {
	serveRead(a, w, r, "campaigns", 30, a.st.Campaigns)
}

func (a *api) getRevenueData(w http.ResponseWriter, r *http.Request) {
	serveRead(a, w, r, "revenue data", 60, a.st.RevenueData)
}

func (a *api) getTrafficSources(w http.ResponseWriter, r *http.Request) {
	serveRead(a, w, r, "traffic sources", 60, a.st.TrafficSources)
}

func (a *api) getCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := a.st.Campaign(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Campaign not found")
		return
	}
	if err != nil {
		a.log.Error("store read failed",
			slog.String("resource", "campaign"),
			slog.String("id", id),
			slog.String("rid", utils.RID(r.Context())),
			slog.String("err", err.Error()))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch campaign")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=30")
	utils.WriteJSON(w, http.StatusOK, c)
}

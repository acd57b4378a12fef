package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

const maxBody = 1 << 20

// serveCreate decodes and validates the body into Req before anything
// reaches the store, so a rejected request leaves state untouched.
func serveCreate[Req, In, Out any](a *api, w http.ResponseWriter, r *http.Request, resource string, convert func(Req) In, create func(context.Context, In) (Out, error)) {
	var in Req
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := models.Validate(in); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid "+resource, verr.Fields...)
			return
		}
		utils.WriteError(w, http.StatusBadRequest, "Invalid "+resource)
		return
	}
	out, err := create(r.Context(), convert(in))
	if err != nil {
		a.log.Error("store write failed",
			slog.String("resource", resource),
			slog.String("rid", utils.RID(r.Context())),
			slog.String("err", err.Error()))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create "+resource)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, out)
}

func (a *api) createMetrics(w http.ResponseWriter, r *http.Request) {
	serveCreate(a, w, r, "metrics", models.MetricsInput.NewMetrics, a.st.CreateMetrics)
}

func (a *api) createCampaign(w http.ResponseWriter, r *http.Request) {
	serveCreate(a, w, r, "campaign", models.CampaignInput.NewCampaign, a.st.CreateCampaign)
}

func (a *api) createRevenuePoint(w http.ResponseWriter, r *http.Request) {
	serveCreate(a, w, r, "revenue data", models.RevenuePointInput.NewRevenuePoint, a.st.CreateRevenuePoint)
}

func (a *api) createTrafficSource(w http.ResponseWriter, r *http.Request) {
	serveCreate(a, w, r, "traffic source", models.TrafficSourceInput.NewTrafficSource, a.st.CreateTrafficSource)
}

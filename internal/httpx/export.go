package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

// TimestampLayout renders instants as ISO-8601 with milliseconds in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const csvHeader = "Campaign Name,Category,Status,Impressions,Clicks,CTR,Spend"

func (a *api) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" {
		format = "json"
	}
	fail := func(err error) {
		a.log.Error("export failed",
			slog.String("format", format),
			slog.String("rid", utils.RID(r.Context())),
			slog.String("err", err.Error()))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to export data")
	}

	campaigns, err := a.st.Campaigns(r.Context())
	if err != nil {
		fail(fmt.Errorf("read campaigns: %w", err))
		return
	}
	snapshot, err := a.st.Metrics(r.Context())
	if err != nil {
		fail(fmt.Errorf("read metrics: %w", err))
		return
	}

	// The whole body is built before any header goes out.
	var (
		body        []byte
		contentType string
	)
	if format == "csv" {
		body = CampaignsCSV(campaigns)
		contentType = "text/csv"
	} else {
		body, err = json.Marshal(models.Export{
			Metrics:    snapshot,
			Campaigns:  campaigns,
			ExportedAt: a.opts.Now().UTC().Format(TimestampLayout),
		})
		if err != nil {
			fail(fmt.Errorf("encode export: %w", err))
			return
		}
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=dashboard-export."+format)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// CampaignsCSV renders the campaign export: a header row then one row per
// campaign, text fields always quoted, numbers bare, no trailing newline.
func CampaignsCSV(campaigns []models.Campaign) []byte {
	var b bytes.Buffer
	b.WriteString(csvHeader)
	for _, c := range campaigns {
		b.WriteByte('\n')
		b.WriteString(quote(c.Name))
		b.WriteByte(',')
		b.WriteString(quote(c.Category))
		b.WriteByte(',')
		b.WriteString(quote(string(c.Status)))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Impressions))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Clicks))
		b.WriteByte(',')
		b.WriteString(fixed(c.CTR))
		b.WriteByte(',')
		b.WriteString(fixed(c.Spend))
	}
	return b.Bytes()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// fixed prints at least two decimals without dropping any stored digits.
func fixed(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

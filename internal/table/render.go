package table

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

// Render writes the metrics summary (when m is non-nil) and the campaign page
// as aligned text.
func Render(w io.Writer, m *models.MetricsSnapshot, p Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if m != nil {
		fmt.Fprintf(tw, "Revenue\t%s\t(%s%%)\n", m.Revenue.StringFixed(2), m.RevenueGrowth.String())
		fmt.Fprintf(tw, "Active users\t%d\t(%s%%)\n", m.Users, m.UserGrowth.String())
		fmt.Fprintf(tw, "Conversions\t%d\t(%s%%)\n", m.Conversions, m.ConversionGrowth.String())
		fmt.Fprintf(tw, "Growth rate\t%s%%\t\n", m.GrowthRate.String())
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw, "CAMPAIGN\tCATEGORY\tSTATUS\tIMPRESSIONS\tCLICKS\tCTR\tSPEND")
	for _, c := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s%%\t$%s\n",
			c.Name, c.Category, c.Status, c.Impressions, c.Clicks, c.CTR.StringFixed(2), c.Spend.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d to %d of %d results (page %d of %d)\n", p.Start, p.End, p.Total, p.Number, p.TotalPages)
	return err
}

// RenderBreakdown writes monthly revenue and the traffic-source shares as two
// aligned blocks. An empty slice prints only its header.
func RenderBreakdown(w io.Writer, revenue []models.RevenuePoint, sources []models.TrafficSource) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tREVENUE")
	for _, p := range revenue {
		fmt.Fprintf(tw, "%s\t$%s\n", p.Month, p.Revenue.StringFixed(2))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SOURCE\tSHARE")
	for _, s := range sources {
		fmt.Fprintf(tw, "%s\t%s%%\n", s.Source, s.Percentage.StringFixed(1))
	}
	return tw.Flush()
}

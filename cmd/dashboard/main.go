// Command dashboard polls the dashboard API and prints the metrics summary,
// one page of the campaign table and the revenue and traffic breakdown,
// refreshing on a fixed interval. SIGHUP forces an immediate refresh.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/AngelCh415/marketing-dashboard/internal/client"
	"github.com/AngelCh415/marketing-dashboard/internal/config"
	"github.com/AngelCh415/marketing-dashboard/internal/refresh"
	"github.com/AngelCh415/marketing-dashboard/internal/table"
	"github.com/AngelCh415/marketing-dashboard/internal/utils"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	q := table.DefaultQuery()
	var sortField, direction string
	flag.StringVar(&q.Search, "search", "", "match campaign name or category (case-insensitive)")
	flag.StringVar(&q.Status, "status", table.StatusAll, "all|active|paused|completed")
	flag.StringVar(&sortField, "sort", string(table.SortName), "name|impressions|clicks|ctr|spend")
	flag.StringVar(&direction, "dir", string(table.Asc), "asc|desc")
	flag.IntVar(&q.Page, "page", 1, "1-based page number")
	flag.IntVar(&q.PageSize, "page-size", table.DefaultPageSize, "campaigns per page")
	once := flag.Bool("once", false, "print once and exit")
	export := flag.String("export", "", "write an export (json|csv) to stdout and exit")
	flag.Parse()
	q.SortField = table.SortField(sortField)
	q.Direction = table.Direction(direction)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	api, err := client.NewAPI(cfg.APIURL, client.NewHTTPClient(cfg.HTTPTimeout), utils.NewBackoff(cfg.FetchBackoff, cfg.FetchRetries))
	if err != nil {
		config.Exitf("api: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *export != "" {
		body, err := api.Export(ctx, *export)
		if err != nil {
			config.Exitf("%v", err)
		}
		os.Stdout.Write(body)
		return
	}

	dash := client.NewDashboard(api, client.NewQueryCache(nil))
	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		m, err := dash.Metrics(ctx)
		if err != nil {
			logger.Error("fetch metrics", slog.String("err", err.Error()))
			return
		}
		cs, err := dash.Campaigns(ctx)
		if err != nil {
			logger.Error("fetch campaigns", slog.String("err", err.Error()))
			return
		}
		rev, err := dash.RevenueData(ctx)
		if err != nil {
			logger.Error("fetch revenue data", slog.String("err", err.Error()))
			return
		}
		ts, err := dash.TrafficSources(ctx)
		if err != nil {
			logger.Error("fetch traffic sources", slog.String("err", err.Error()))
			return
		}
		fmt.Fprint(os.Stdout, "\033[H\033[2J")
		if err := table.Render(os.Stdout, m, table.Apply(cs, q)); err != nil {
			logger.Error("render", slog.String("err", err.Error()))
			return
		}
		fmt.Fprintln(os.Stdout)
		if err := table.RenderBreakdown(os.Stdout, rev, ts); err != nil {
			logger.Error("render", slog.String("err", err.Error()))
		}
	}

	render()
	if *once {
		return
	}

	coord := refresh.New(dash, cfg.RefreshInterval, client.DashboardKeys,
		refresh.WithOnTick(render), refresh.WithLogger(logger))
	coord.Start(ctx)
	defer coord.Stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			coord.ForceUpdate()
			render()
		}
	}
}

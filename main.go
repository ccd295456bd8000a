package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"github.com/hirshagarwal/airport-traffic/business/predict"
	"github.com/hirshagarwal/airport-traffic/config"
	"github.com/hirshagarwal/airport-traffic/flights"
	"github.com/hirshagarwal/airport-traffic/flights/depcache"
	"github.com/hirshagarwal/airport-traffic/flights/flightstats"
	"github.com/hirshagarwal/airport-traffic/tsa"
	"github.com/hirshagarwal/airport-traffic/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cacheDir, err := config.Config.CacheDir()
	if err != nil {
		panic(err)
	}

	tsaClient := tsa.NewClient(config.Config.Rand())
	flightsClient := flights.NewClient()
	estimator := predict.NewEstimator(tsaClient, flightsClient)

	fsc := config.Config.FlightStatsClient()
	departures := depcache.NewStore(cacheDir, func(ctx context.Context, airport string, year, month, day, hour int) ([]flights.FlightRecord, error) {
		return fsc.Departures(ctx, airport, flightstats.Query{Year: year, Month: month, Day: day, Hour: hour})
	})

	e := echo.New()
	e.Use(
		web.ErrorLogAndMaskMiddleware(log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)),
		web.NoCacheOnErrorMiddleware(),
	)

	e.GET("/", web.NewIndexHandler().Index)

	{
		group := e.Group("/api")

		estimateHandler := web.NewEstimateHandler(estimator)
		group.GET("/estimate/:airport", estimateHandler.Estimate)
	}

	{
		group := e.Group("/data")

		dataHandler := web.NewDataHandler(departures)
		group.GET("/airports.json", dataHandler.Airports)
		group.GET("/departures/:airport", dataHandler.Departures)

		feedHandler := web.NewFeedHandler(flightsClient)
		group.GET("/departures/:airport/feed.rss", feedHandler.DeparturesRSSFeed)
		group.GET("/departures/:airport/feed.atom", feedHandler.DeparturesAtomFeed)
	}

	if err := run(ctx, e); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, e *echo.Echo) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down the echo server", slog.String("err", err.Error()))
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", config.Config.EchoPort())); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}

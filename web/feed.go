package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/hirshagarwal/airport-traffic/airports"
	"github.com/hirshagarwal/airport-traffic/flights"
)

type feedMovementsSource interface {
	Movements(ctx context.Context, code string, t time.Time) (flights.AircraftMovements, error)
}

type FeedHandler struct {
	movements feedMovementsSource
}

func NewFeedHandler(movements feedMovementsSource) *FeedHandler {
	return &FeedHandler{movements: movements}
}

func (fh *FeedHandler) DeparturesRSSFeed(c echo.Context) error {
	return fh.departuresFeed(c, "application/rss+xml", func(f *feeds.Feed, w io.Writer) error {
		return f.WriteRss(w)
	})
}

func (fh *FeedHandler) DeparturesAtomFeed(c echo.Context) error {
	return fh.departuresFeed(c, "application/atom+xml", func(f *feeds.Feed, w io.Writer) error {
		return f.WriteAtom(w)
	})
}

func (fh *FeedHandler) departuresFeed(c echo.Context, contentType string, writer func(*feeds.Feed, io.Writer) error) error {
	code := strings.ToUpper(c.Param("airport"))
	entry, ok := airports.Lookup(code)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, WithMessage("unknown airport code"))
	}

	now := time.Now().UTC()
	movements, err := fh.movements.Movements(c.Request().Context(), entry.Code, now)
	if err != nil {
		return err
	}

	feedId := baseUrl(c) + "/data/departures/" + entry.Code
	feed := &feeds.Feed{
		Id:      feedId,
		Title:   fmt.Sprintf("Departures from %s", entry.Label()),
		Link:    &feeds.Link{Href: feedId},
		Created: now,
		Updated: now,
	}

	departures := make([]flights.FlightRecord, 0, len(movements.Training.Departures)+len(movements.Prediction.Departures))
	departures = append(departures, movements.Training.Departures...)
	departures = append(departures, movements.Prediction.Departures...)

	for _, f := range departures {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:      fmt.Sprintf("%s/%s/%s", feedId, f.ArrivalCity, f.DepartureTime.Format(time.RFC3339)),
			Title:   fmt.Sprintf("%s to %s", entry.Code, f.ArrivalCity),
			Link:    &feeds.Link{Href: feedId},
			Created: now,
			Updated: now,
			Content: feedContent(f),
		})
	}

	c.Response().Header().Add(echo.HeaderContentType, contentType)
	addExpirationHeaders(c, now, time.Hour)

	_ = writer(feed, c.Response())
	return nil
}

func feedContent(f flights.FlightRecord) string {
	content := fmt.Sprintf(
		`
Flight from %s to %s
Departure: %s
Arrival: %s
Estimated passengers: %d
`,
		f.DepartureAirport,
		f.ArrivalCity,
		f.DepartureTime.Format(time.RFC3339),
		f.ArrivalTime.Format(time.RFC3339),
		f.EstimatedPassengers,
	)

	return strings.TrimSpace(content)
}

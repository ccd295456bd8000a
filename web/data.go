package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hirshagarwal/airport-traffic/airports"
	"github.com/hirshagarwal/airport-traffic/flights"
)

type airportModel struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type departuresSource interface {
	Departures(ctx context.Context, airport string, year, month, day, hour int) ([]flights.FlightRecord, error)
}

type DataHandler struct {
	departures departuresSource
}

func NewDataHandler(departures departuresSource) *DataHandler {
	return &DataHandler{departures: departures}
}

func (dh *DataHandler) Airports(c echo.Context) error {
	entries := airports.Entries()
	resp := make([]airportModel, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, airportModel{
			Code:  entry.Code,
			Name:  entry.Name,
			Label: entry.Label(),
		})
	}

	addExpirationHeaders(c, time.Now(), time.Hour*24)
	return c.JSON(http.StatusOK, resp)
}

// Departures serves the cached-or-fetched departure list for one airport.
// The window defaults to the current UTC hour and can be overridden through
// the year/month/day/hour query parameters.
func (dh *DataHandler) Departures(c echo.Context) error {
	code := strings.ToUpper(c.Param("airport"))
	if !airports.Valid(code) {
		return NewHTTPError(http.StatusBadRequest, WithMessage("unknown airport code"))
	}

	now := time.Now().UTC()
	year, err := intQueryParam(c, "year", now.Year())
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	month, err := intQueryParam(c, "month", int(now.Month()))
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	day, err := intQueryParam(c, "day", now.Day())
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	hour, err := intQueryParam(c, "hour", now.Hour())
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err), WithUnmaskedCause())
	}

	records, err := dh.departures.Departures(c.Request().Context(), code, year, month, day, hour)
	if err != nil {
		return NewHTTPError(http.StatusBadGateway, WithMessage("departures upstream unavailable"), WithCause(err))
	}

	return c.JSON(http.StatusOK, records)
}

func intQueryParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(raw)
}

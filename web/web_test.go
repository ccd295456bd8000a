package web_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/hirshagarwal/airport-traffic/airports"
	"github.com/hirshagarwal/airport-traffic/business/predict"
	"github.com/hirshagarwal/airport-traffic/flights"
	"github.com/hirshagarwal/airport-traffic/tsa"
	"github.com/hirshagarwal/airport-traffic/web"
)

type stubDepartures struct {
	records []flights.FlightRecord
	err     error
}

func (s stubDepartures) Departures(ctx context.Context, airport string, year, month, day, hour int) ([]flights.FlightRecord, error) {
	return s.records, s.err
}

func newTestServer(departures stubDepartures) *echo.Echo {
	flightsClient := flights.NewClient()
	estimator := predict.NewEstimator(tsa.NewClient(nil), flightsClient)

	e := echo.New()
	e.Use(
		web.ErrorLogAndMaskMiddleware(log.New(io.Discard, "", 0)),
		web.NoCacheOnErrorMiddleware(),
	)

	e.GET("/", web.NewIndexHandler().Index)

	estimateHandler := web.NewEstimateHandler(estimator)
	e.GET("/api/estimate/:airport", estimateHandler.Estimate)

	dataHandler := web.NewDataHandler(departures)
	e.GET("/data/airports.json", dataHandler.Airports)
	e.GET("/data/departures/:airport", dataHandler.Departures)

	feedHandler := web.NewFeedHandler(flightsClient)
	e.GET("/data/departures/:airport/feed.rss", feedHandler.DeparturesRSSFeed)
	e.GET("/data/departures/:airport/feed.atom", feedHandler.DeparturesAtomFeed)

	return e
}

func doRequest(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestIndexListsAllAirports(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Airport Traffic Estimator")

	entries := airports.Entries()
	assert.Len(t, entries, 15)
	assert.Equal(t, 15, strings.Count(body, "<option"))
	for _, entry := range entries {
		assert.Contains(t, body, entry.Label())
	}
}

func TestEstimateKnownAirport(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/api/estimate/ATL")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result predict.Result
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ATL", result.Airport)
	assert.GreaterOrEqual(t, result.PredictedPassengerLoad, 0)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestEstimateLowercaseCode(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/api/estimate/atl")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result predict.Result
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ATL", result.Airport)
}

func TestEstimateUnknownAirport(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/api/estimate/ZZZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAirportsJSON(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/data/airports.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Expires"))

	var resp []struct {
		Code  string `json:"code"`
		Name  string `json:"name"`
		Label string `json:"label"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	if !assert.Len(t, resp, 15) {
		return
	}

	assert.Equal(t, "ATL", resp[0].Code)
	for _, airport := range resp {
		assert.Equal(t, airport.Code+" – "+airport.Name, airport.Label)
	}
}

func TestDepartures(t *testing.T) {
	e := newTestServer(stubDepartures{records: []flights.FlightRecord{
		{DepartureAirport: "JFK", ArrivalCity: "Boston", FlightNumber: "DL 123"},
	}})

	rec := doRequest(e, "/data/departures/JFK")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DL 123")
}

func TestDeparturesUnknownAirport(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/data/departures/ZZZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeparturesBadQueryParam(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/data/departures/JFK?hour=later")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeparturesUpstreamFailure(t *testing.T) {
	e := newTestServer(stubDepartures{err: assert.AnError})

	rec := doRequest(e, "/data/departures/JFK")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDeparturesFeeds(t *testing.T) {
	e := newTestServer(stubDepartures{})

	rec := doRequest(e, "/data/departures/JFK/feed.rss")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "application/rss+xml"))
	assert.Contains(t, rec.Body.String(), "Departures from JFK")

	rec = doRequest(e, "/data/departures/JFK/feed.atom")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "application/atom+xml"))

	rec = doRequest(e, "/data/departures/ZZZ/feed.rss")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

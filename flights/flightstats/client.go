// Package flightstats retrieves planned departures from the FlightStats
// flight tracker. The departures page embeds a Next.js state payload whose
// flightTracker.route.flights entry holds the planned departures; the client
// fetches the HTML, extracts the embedded JSON and maps it to FlightRecords.
package flightstats

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/hirshagarwal/airport-traffic/flights"
)

var nextDataRgx = regexp.MustCompile(`(?s)__NEXT_DATA__\s*=\s*(\{.*?\})\s*;__NEXT_LOADED_PAGES__`)

// FlightStats serves dynamic content and may block non-browser clients
// unless a reasonable User-Agent and Accept headers are provided.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.flightstats.com/",
}

type responseStatusErr struct {
	StatusCode int
	Status     string
}

func (e responseStatusErr) Error() string {
	return e.Status
}

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseUrl    string
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithBaseUrl(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := new(Client)
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.baseUrl = cmp.Or(c.baseUrl, "https://www.flightstats.com")

	return c
}

// Query selects the departure window: all departures within the given local
// hour of the given date.
type Query struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

func (q Query) validate() error {
	if q.Month < 1 || q.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", q.Month)
	}

	if q.Day < 1 || q.Day > 31 {
		return fmt.Errorf("day must be between 1 and 31, got %d", q.Day)
	}

	if q.Hour < 0 || q.Hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23, got %d", q.Hour)
	}

	return nil
}

func (q Query) values() url.Values {
	values := make(url.Values)
	values.Set("year", strconv.Itoa(q.Year))
	values.Set("month", strconv.Itoa(q.Month))
	values.Set("date", strconv.Itoa(q.Day))
	values.Set("hour", strconv.Itoa(q.Hour))

	return values
}

type nextData struct {
	Props struct {
		InitialState struct {
			FlightTracker struct {
				Route struct {
					Flights []rawFlight `json:"flights"`
				} `json:"route"`
			} `json:"flightTracker"`
		} `json:"initialState"`
	} `json:"props"`
}

type rawFlight struct {
	SortTime    string `json:"sortTime"`
	Url         string `json:"url"`
	ArrivalTime struct {
		Time24 string `json:"time24"`
	} `json:"arrivalTime"`
	Airport struct {
		City string `json:"city"`
		Name string `json:"name"`
		Fs   string `json:"fs"`
	} `json:"airport"`
	Carrier struct {
		Name         string `json:"name"`
		Fs           string `json:"fs"`
		FlightNumber string `json:"flightNumber"`
	} `json:"carrier"`
}

// Departures returns the planned departures for the given airport and window.
// Entries the payload parser cannot make sense of are skipped rather than
// failing the whole request.
func (c *Client) Departures(ctx context.Context, airport string, q Query) ([]flights.FlightRecord, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	airport = strings.ToUpper(strings.TrimSpace(airport))
	if airport == "" {
		return nil, fmt.Errorf("airport must not be empty")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"/v2/flight-tracker/departures/"+airport+"?"+q.values().Encode(), nil)
	if err != nil {
		return nil, err
	}

	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseStatusErr{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseDepartures(body, airport)
}

func parseDepartures(html []byte, airport string) ([]flights.FlightRecord, error) {
	match := nextDataRgx.FindSubmatch(html)
	if match == nil {
		return nil, fmt.Errorf("could not locate the FlightStats payload in the response HTML")
	}

	var payload nextData
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(match[1], &payload); err != nil {
		return nil, fmt.Errorf("invalid FlightStats payload: %w", err)
	}

	records := make([]flights.FlightRecord, 0, len(payload.Props.InitialState.FlightTracker.Route.Flights))
	for _, raw := range payload.Props.InitialState.FlightTracker.Route.Flights {
		record, err := raw.toRecord(airport)
		if err != nil {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

func (raw rawFlight) toRecord(departureAirport string) (flights.FlightRecord, error) {
	departureTime, err := time.Parse(time.RFC3339, raw.SortTime)
	if err != nil {
		return flights.FlightRecord{}, fmt.Errorf("flight record has no usable sortTime: %w", err)
	}

	departureTime = departureTime.UTC()

	return flights.FlightRecord{
		DepartureAirport: departureAirport,
		DepartureTime:    departureTime,
		ArrivalCity:      cmp.Or(raw.Airport.City, raw.Airport.Name, raw.Airport.Fs),
		ArrivalTime:      raw.arrivalTime(departureTime),
		Airline:          cmp.Or(raw.Carrier.Name, raw.Carrier.Fs),
		FlightNumber:     raw.flightIdentifier(),
	}, nil
}

// arrivalTime composes the arrival timestamp from the departure date and the
// payload's wall-clock arrival time, rolling over to the next day when the
// arrival reads earlier than the departure.
func (raw rawFlight) arrivalTime(departureTime time.Time) time.Time {
	parts := strings.SplitN(raw.ArrivalTime.Time24, ":", 2)
	if len(parts) != 2 {
		return departureTime
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return departureTime
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return departureTime
	}

	arrival := time.Date(departureTime.Year(), departureTime.Month(), departureTime.Day(), hour, minute, 0, 0, departureTime.Location())
	if arrival.Before(departureTime) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	return arrival
}

func (raw rawFlight) flightIdentifier() string {
	combined := strings.TrimSpace(strings.TrimSpace(raw.Carrier.Fs) + " " + strings.TrimSpace(raw.Carrier.FlightNumber))
	if combined != "" {
		return combined
	}

	if trimmed := strings.Trim(raw.Url, "/"); trimmed != "" {
		return trimmed
	}

	return "Unknown"
}

// Package flights provides aircraft movement data. Like the tsa package,
// the movements themselves are mocked; the flightstats subpackage holds the
// real fetcher intended to replace them.
package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/hirshagarwal/airport-traffic/airports"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// Movements returns mocked arrival and departure flights around t for the
// given airport, split into training and prediction buckets.
func (c *Client) Movements(ctx context.Context, code string, t time.Time) (AircraftMovements, error) {
	entry, ok := airports.Lookup(code)
	if !ok {
		return AircraftMovements{}, fmt.Errorf("%w: %q", airports.ErrUnknownAirport, code)
	}

	arrivals := []FlightRecord{
		mockFlight(t, "SEA", -180, entry.Code, -60, 140),
		mockFlight(t, "DEN", -240, entry.Code, -30, 160),
	}

	departures := []FlightRecord{
		mockFlight(t, entry.Code, 30, "BOS", 240, 150),
		mockFlight(t, entry.Code, 75, "MIA", 315, 170),
	}

	return AircraftMovements{
		Airport:   entry.Code,
		Timestamp: t.UTC(),
		Training: MovementDataset{
			Arrivals:   arrivals[:1],
			Departures: departures[:1],
		},
		Prediction: MovementDataset{
			Arrivals:   arrivals[1:],
			Departures: departures[1:],
		},
	}, nil
}

func mockFlight(base time.Time, departureAirport string, departureOffsetMinutes int, arrivalCity string, arrivalOffsetMinutes int, passengers int) FlightRecord {
	return FlightRecord{
		DepartureAirport:    departureAirport,
		DepartureTime:       base.Add(time.Minute * time.Duration(departureOffsetMinutes)),
		ArrivalCity:         arrivalCity,
		ArrivalTime:         base.Add(time.Minute * time.Duration(arrivalOffsetMinutes)),
		EstimatedPassengers: passengers,
	}
}

package predict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hirshagarwal/airport-traffic/airports"
	"github.com/hirshagarwal/airport-traffic/flights"
	"github.com/hirshagarwal/airport-traffic/tsa"
)

type stubThroughput struct {
	sample tsa.Sample
	err    error
}

func (s stubThroughput) Throughput(ctx context.Context, code string) (tsa.Sample, error) {
	return s.sample, s.err
}

type stubMovements struct {
	movements flights.AircraftMovements
	err       error
}

func (s stubMovements) Movements(ctx context.Context, code string, t time.Time) (flights.AircraftMovements, error) {
	return s.movements, s.err
}

func TestEstimateCombinesSignals(t *testing.T) {
	e := NewEstimator(
		stubThroughput{sample: tsa.Sample{Airport: "ATL", Passengers: 2300}},
		stubMovements{movements: flights.AircraftMovements{
			Airport: "ATL",
			Prediction: flights.MovementDataset{
				Arrivals:   []flights.FlightRecord{{EstimatedPassengers: 160}},
				Departures: []flights.FlightRecord{{EstimatedPassengers: 170}},
			},
		}},
	)

	result, err := e.Estimate(context.Background(), "ATL")
	assert.NoError(t, err)
	assert.Equal(t, "ATL", result.Airport)
	// 2300 + 1.5 * (160 + 170)
	assert.Equal(t, 2795, result.PredictedPassengerLoad)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestEstimatePropagatesProviderError(t *testing.T) {
	wantErr := errors.New("throughput unavailable")

	e := NewEstimator(
		stubThroughput{err: wantErr},
		stubMovements{},
	)

	_, err := e.Estimate(context.Background(), "ATL")
	assert.ErrorIs(t, err, wantErr)
}

func TestEstimateWithRealProviders(t *testing.T) {
	e := NewEstimator(tsa.NewClient(nil), flights.NewClient())

	for _, entry := range airports.Entries() {
		result, err := e.Estimate(context.Background(), entry.Code)
		assert.NoError(t, err)
		assert.Equal(t, entry.Code, result.Airport)
		assert.GreaterOrEqual(t, result.PredictedPassengerLoad, 0)
	}
}

func TestEstimateUnknownAirport(t *testing.T) {
	e := NewEstimator(tsa.NewClient(nil), flights.NewClient())

	_, err := e.Estimate(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, airports.ErrUnknownAirport)
}

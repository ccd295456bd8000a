// Package predict combines the throughput and movement signals into a single
// passenger load estimate. The arithmetic is a placeholder heuristic; the
// package boundary is where a real statistical model would live.
package predict

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hirshagarwal/airport-traffic/flights"
	"github.com/hirshagarwal/airport-traffic/tsa"
)

// passengerWeight scales the flight passenger signal against the raw
// checkpoint throughput.
const passengerWeight = 1.5

type ThroughputSource interface {
	Throughput(ctx context.Context, code string) (tsa.Sample, error)
}

type MovementsSource interface {
	Movements(ctx context.Context, code string, t time.Time) (flights.AircraftMovements, error)
}

type Result struct {
	Airport                string    `json:"airport"`
	PredictedPassengerLoad int       `json:"predicted_passenger_load"`
	GeneratedAt            time.Time `json:"generated_at"`
}

type Estimator struct {
	throughput ThroughputSource
	movements  MovementsSource
}

func NewEstimator(throughput ThroughputSource, movements MovementsSource) *Estimator {
	return &Estimator{
		throughput: throughput,
		movements:  movements,
	}
}

// Estimate pulls both signals for the given airport and combines them. An
// unknown airport code surfaces as airports.ErrUnknownAirport from either
// source; there are no retries or partial results.
func (e *Estimator) Estimate(ctx context.Context, code string) (Result, error) {
	now := time.Now().UTC()

	var sample tsa.Sample
	var movements flights.AircraftMovements

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sample, err = e.throughput.Throughput(ctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = e.movements.Movements(ctx, code, now)
		return err
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	passengerSignal := movements.Prediction.PassengerSum()
	load := int(float64(sample.Passengers) + float64(passengerSignal)*passengerWeight)

	return Result{
		Airport:                sample.Airport,
		PredictedPassengerLoad: load,
		GeneratedAt:            now,
	}, nil
}

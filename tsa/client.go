// Package tsa provides checkpoint throughput numbers. The current
// implementation returns mocked values; a future version is expected to call
// the real TSA throughput API using the configured API key.
package tsa

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hirshagarwal/airport-traffic/airports"
)

type Sample struct {
	Airport    string    `json:"airport"`
	Timestamp  time.Time `json:"timestamp"`
	Passengers int       `json:"passengers"`
}

var baseline = map[string]int{
	"JFK": 1800,
	"LAX": 2100,
	"SFO": 1500,
	"ORD": 2000,
	"ATL": 2300,
}

const (
	defaultBaseline = 1600
	maxJitter       = 200
)

type Client struct {
	mtx sync.Mutex
	rnd *rand.Rand
}

// NewClient returns a throughput client. rnd may be nil, in which case the
// returned samples are the plain per-airport baselines; passing a seeded
// source makes the jitter reproducible.
func NewClient(rnd *rand.Rand) *Client {
	return &Client{rnd: rnd}
}

func (c *Client) Throughput(ctx context.Context, code string) (Sample, error) {
	entry, ok := airports.Lookup(code)
	if !ok {
		return Sample{}, fmt.Errorf("%w: %q", airports.ErrUnknownAirport, code)
	}

	passengers, ok := baseline[entry.Code]
	if !ok {
		passengers = defaultBaseline
	}

	if c.rnd != nil {
		c.mtx.Lock()
		passengers += c.rnd.Intn(maxJitter + 1)
		c.mtx.Unlock()
	}

	return Sample{
		Airport:    entry.Code,
		Timestamp:  time.Now().UTC(),
		Passengers: passengers,
	}, nil
}

package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/hirshagarwal/airport-traffic/flights/flightstats"
)

var Config = accessor{}

type accessor struct{}

func (accessor) EchoPort() int {
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			return port
		}
	}

	return 8080
}

// TSAAPIKey and FlightsAPIKey exist for parity with the planned real data
// sources; the mocked providers do not read them yet.
func (accessor) TSAAPIKey() string {
	return os.Getenv("TSA_API_KEY")
}

func (accessor) FlightsAPIKey() string {
	return os.Getenv("FLIGHTS_API_KEY")
}

func (accessor) CacheDir() (string, error) {
	if dir := os.Getenv("TRAFFIC_CACHE_DIR"); dir != "" {
		return dir, nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, "airport-traffic", "departures"), nil
}

// Rand returns the random source for the mocked providers. TRAFFIC_SEED
// makes runs reproducible; without it the source is time-seeded.
func (accessor) Rand() *rand.Rand {
	if raw := os.Getenv("TRAFFIC_SEED"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return rand.New(rand.NewSource(seed))
		}
	}

	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (accessor) FlightStatsClient() *flightstats.Client {
	return flightstats.NewClient(
		flightstats.WithRateLimiter(rate.NewLimiter(rate.Every(time.Second*2), 1)),
	)
}

// Package depcache caches fetched departure lists on disk so repeated
// requests for the same airport and hour do not hit FlightStats again.
package depcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/hirshagarwal/airport-traffic/flights"
)

// FetchFunc loads departures from the upstream source on a cache miss.
type FetchFunc func(ctx context.Context, airport string, year, month, day, hour int) ([]flights.FlightRecord, error)

type Store struct {
	dir   string
	fetch FetchFunc
}

func NewStore(dir string, fetch FetchFunc) *Store {
	return &Store{
		dir:   dir,
		fetch: fetch,
	}
}

// Departures returns the departures for the requested window, preferring the
// on-disk cache. A missing or unreadable cache file falls through to the
// fetcher; a failure to write the fresh result back is not fatal.
func (s *Store) Departures(ctx context.Context, airport string, year, month, day, hour int) ([]flights.FlightRecord, error) {
	fpath := s.cacheFile(airport, year, month, day, hour)
	if records, err := loadRecords(fpath); err == nil {
		return records, nil
	}

	records, err := s.fetch(ctx, airport, year, month, day, hour)
	if err != nil {
		return nil, err
	}

	_ = storeRecords(fpath, records)
	return records, nil
}

func (s *Store) cacheFile(airport string, year, month, day, hour int) string {
	sanitized := strings.ToUpper(strings.TrimSpace(airport))
	if sanitized == "" {
		sanitized = "UNKNOWN"
	}

	return filepath.Join(s.dir, fmt.Sprintf("%s_%04d%02d%02d_%02d.json", sanitized, year, month, day, hour))
}

func loadRecords(fpath string) ([]flights.FlightRecord, error) {
	b, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	var records []flights.FlightRecord
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func storeRecords(fpath string, records []flights.FlightRecord) error {
	if err := os.MkdirAll(filepath.Dir(fpath), 0750); err != nil {
		return err
	}

	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fpath, b, 0640)
}

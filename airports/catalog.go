package airports

import (
	"errors"
	"slices"
	"strings"
)

var ErrUnknownAirport = errors.New("unknown airport")

// Entry pairs an IATA airport code with its display name. The catalog is
// fixed at process start and never mutated.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (e Entry) Label() string {
	return e.Code + " – " + e.Name
}

var catalog = []Entry{
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport"},
	{Code: "LAX", Name: "Los Angeles International Airport"},
	{Code: "ORD", Name: "Chicago O'Hare International Airport"},
	{Code: "DFW", Name: "Dallas Fort Worth International Airport"},
	{Code: "DEN", Name: "Denver International Airport"},
	{Code: "JFK", Name: "John F. Kennedy International Airport"},
	{Code: "SFO", Name: "San Francisco International Airport"},
	{Code: "SEA", Name: "Seattle-Tacoma International Airport"},
	{Code: "LAS", Name: "Harry Reid International Airport"},
	{Code: "MCO", Name: "Orlando International Airport"},
	{Code: "EWR", Name: "Newark Liberty International Airport"},
	{Code: "MIA", Name: "Miami International Airport"},
	{Code: "PHX", Name: "Phoenix Sky Harbor International Airport"},
	{Code: "IAH", Name: "George Bush Intercontinental Airport"},
	{Code: "BOS", Name: "Boston Logan International Airport"},
}

var byCode = func() map[string]Entry {
	m := make(map[string]Entry, len(catalog))
	for _, entry := range catalog {
		m[entry.Code] = entry
	}

	return m
}()

// Entries returns the catalog in its fixed order. The returned slice is a
// copy; callers may not mutate the catalog through it.
func Entries() []Entry {
	return slices.Clone(catalog)
}

// Lookup resolves a code (case-insensitive) to its catalog entry.
func Lookup(code string) (Entry, bool) {
	entry, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return entry, ok
}

func Valid(code string) bool {
	_, ok := Lookup(code)
	return ok
}

package flights

import "time"

// FlightRecord represents a single flight movement used for training or
// prediction.
type FlightRecord struct {
	DepartureAirport    string    `json:"departure_airport"`
	DepartureTime       time.Time `json:"departure_time"`
	ArrivalCity         string    `json:"arrival_city"`
	ArrivalTime         time.Time `json:"arrival_time"`
	Airline             string    `json:"airline,omitempty"`
	FlightNumber        string    `json:"flight_number,omitempty"`
	EstimatedPassengers int       `json:"estimated_passengers,omitempty"`
}

// MovementDataset collects arrival and departure flights for a given purpose.
type MovementDataset struct {
	Arrivals   []FlightRecord `json:"arrivals"`
	Departures []FlightRecord `json:"departures"`
}

func (ds MovementDataset) PassengerSum() int {
	var sum int
	for _, f := range ds.Arrivals {
		sum += f.EstimatedPassengers
	}

	for _, f := range ds.Departures {
		sum += f.EstimatedPassengers
	}

	return sum
}

// AircraftMovements is the structured movement payload returned by the
// flights service, split into a training bucket and a prediction bucket so
// that a real model can be slotted in later without changing the shape.
type AircraftMovements struct {
	Airport    string          `json:"airport"`
	Timestamp  time.Time       `json:"timestamp"`
	Training   MovementDataset `json:"training"`
	Prediction MovementDataset `json:"prediction"`
}

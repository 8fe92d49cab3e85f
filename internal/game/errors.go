package game

import "errors"

var (
	ErrInvalidCapacity   = errors.New("plane capacity must be positive")
	ErrInvalidFlights    = errors.New("flights per day must be at least 1")
	ErrInvalidReputation = errors.New("reputation must be between 0 and 100")
	ErrInvalidPriority   = errors.New("invalid class priority")
	ErrInvalidTraining   = errors.New("training must be between 0 and 3 percent")
	ErrNegativeDistance  = errors.New("distance must not be negative")
	ErrInvalidSpeed      = errors.New("plane speed must be positive")
	ErrInvalidActivity   = errors.New("activity must be between 0 and 24 hours")
	ErrInvalidAmount     = errors.New("owned amount must be positive")
	ErrUnknownAirport    = errors.New("airport not found")
	ErrUnknownPlane      = errors.New("plane not found")
	ErrSameAirport       = errors.New("origin and destination must differ")
)

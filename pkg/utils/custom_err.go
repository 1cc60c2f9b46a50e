package utils

import "errors"

var (
	ErrVenueNotFound      = errors.New("venue not found")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrSessionNotFound    = errors.New("planning session not found")
	ErrStartVenueRequired = errors.New("start venue is required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTime        = errors.New("invalid time")
	ErrInvalidAction      = errors.New("invalid feedback action")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrWeatherUnavailable = errors.New("weather unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

package main

import (
	"io"

	"github.com/9seconds/nearby/geolib"
	"github.com/rs/zerolog"
)

type logger struct {
	lookupLog   zerolog.Logger
	distanceLog zerolog.Logger
}

func (l *logger) LookupError(addr, name string, err error) {
	l.lookupLog.Warn().Str("geolocator", name).Str("address", addr).Err(err).Msg("")
}

func (l *logger) LocationFallback(addr string, reason error) {
	l.lookupLog.Warn().Str("address", addr).Err(reason).Msg("Use fallback location")
}

func (l *logger) LocationResolved(addr string, location geolib.Coordinate) {
	l.lookupLog.Debug().
		Str("address", addr).
		Float64("latitude", location.Latitude).
		Float64("longitude", location.Longitude).
		Msg("Location is resolved")
}

func (l *logger) DistanceError(neighborhood string, err error) {
	l.distanceLog.Warn().Str("neighborhood", neighborhood).Err(err).Msg("")
}

func (l *logger) DistanceCalculated(neighborhood string, distance float64) {
	l.distanceLog.Debug().Str("neighborhood", neighborhood).Float64("distance_km", distance).Msg("")
}

func newLogger(out io.Writer, debug bool) geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &logger{
		lookupLog:   zerolog.New(out).Level(level).With().Timestamp().Str("event_name", "lookup").Logger(),
		distanceLog: zerolog.New(out).Level(level).With().Timestamp().Str("event_name", "distance").Logger(),
	}
}

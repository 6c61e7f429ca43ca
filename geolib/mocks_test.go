package geolib_test

import (
	"context"

	"github.com/9seconds/nearby/geolib"
	"github.com/stretchr/testify/mock"
)

type GeolocatorMock struct {
	mock.Mock
}

func (m *GeolocatorMock) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	args := m.Called(ctx, addr)

	return args.Get(0).(geolib.GeoLookupResult), args.Error(1)
}

func (m *GeolocatorMock) Name() string {
	return m.Called().String(0)
}

type DistanceCalculatorMock struct {
	mock.Mock
}

func (m *DistanceCalculatorMock) CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return m.Called(lat1, lon1, lat2, lon2).Get(0).(float64)
}

type NeighborhoodFinderMock struct {
	mock.Mock
}

func (m *NeighborhoodFinderMock) FindNeighborhoodInfo(name string) (geolib.NeighborhoodRecord, bool) {
	args := m.Called(name)

	record, _ := args.Get(0).(geolib.NeighborhoodRecord)

	return record, args.Bool(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(addr, name string, err error) {
	m.Called(addr, name, err)
}

func (m *LoggerMock) LocationFallback(addr string, reason error) {
	m.Called(addr, reason)
}

func (m *LoggerMock) LocationResolved(addr string, location geolib.Coordinate) {
	m.Called(addr, location)
}

func (m *LoggerMock) DistanceError(neighborhood string, err error) {
	m.Called(neighborhood, err)
}

func (m *LoggerMock) DistanceCalculated(neighborhood string, distance float64) {
	m.Called(neighborhood, distance)
}

// AllowAll makes every logger call optional. Tests check interesting
// calls with AssertCalled.
func (m *LoggerMock) AllowAll() {
	m.On("LookupError", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("LocationFallback", mock.Anything, mock.Anything).Maybe()
	m.On("LocationResolved", mock.Anything, mock.Anything).Maybe()
	m.On("DistanceError", mock.Anything, mock.Anything).Maybe()
	m.On("DistanceCalculated", mock.Anything, mock.Anything).Maybe()
}

type NeighborhoodListerMock struct {
	NeighborhoodFinderMock
}

func (m *NeighborhoodListerMock) Names() []string {
	names, _ := m.Called().Get(0).([]string)

	return names
}

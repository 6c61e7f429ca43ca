package geolib

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	// ErrNoClientAddress is returned if it is impossible to detect an
	// address of the client.
	ErrNoClientAddress = errors.New("cannot detect client address")

	// ErrLocalAddress is returned if client address belongs to a local
	// network and cannot be geolocated.
	ErrLocalAddress = errors.New("client address is local")

	// ErrNoLocation is returned if geolocation service has responded
	// but without coordinates.
	ErrNoLocation = errors.New("geolocation result has no coordinates")

	// ErrNeighborhoodNotFound is returned if neighborhood finder does
	// not know a requested name.
	ErrNeighborhoodNotFound = errors.New("neighborhood is not found")

	// ErrNoCoordinates is returned if neighborhood record has no
	// latitude or longitude field.
	ErrNoCoordinates = errors.New("neighborhood has no coordinates")

	// ErrBadCoordinate is returned if coordinate of the neighborhood
	// cannot be converted to a number.
	ErrBadCoordinate = errors.New("neighborhood coordinate is not a number")

	// ErrBadDistance is returned if distance calculator has produced
	// something which is not a finite number.
	ErrBadDistance = errors.New("distance is not a finite number")

	// ErrCircuitBreakerOpened is returned by HTTPClient if too many
	// requests to a target have failed recently.
	ErrCircuitBreakerOpened = errors.New("circuit breaker is opened")
)

type jsonHTTPError struct {
	Error struct {
		Message string `json:"message"`
		Context string `json:"context"`
	} `json:"error"`
}

type httpError struct {
	message    string
	err        error
	statusCode int
}

func (h *httpError) Message() string {
	if h == nil {
		return ""
	}

	return h.message
}

func (h *httpError) Context() string {
	if err := errors.Unwrap(h); err != nil {
		return err.Error()
	}

	return ""
}

func (h *httpError) StatusCode() int {
	if h != nil && h.statusCode != 0 {
		return h.statusCode
	}

	return http.StatusInternalServerError
}

func (h *httpError) Unwrap() error {
	if h == nil {
		return nil
	}

	return h.err
}

func (h *httpError) Error() string {
	switch {
	case h == nil:
		return ""
	case h.err != nil && h.message != "":
		return h.message + ": " + h.err.Error()
	case h.err != nil:
		return h.err.Error()
	}

	return h.message
}

func (h *httpError) MarshalJSON() ([]byte, error) {
	value := jsonHTTPError{}
	value.Error.Message = h.Message()
	value.Error.Context = h.Context()

	return json.Marshal(&value)
}

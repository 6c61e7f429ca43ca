package geolib

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
)

type httpHandler struct {
	resolver *LocationResolver
}

type distanceResult struct {
	Neighborhood string  `json:"neighborhood"`
	DistanceKm   float64 `json:"distance_km"`
	Message      string  `json:"message"`
}

func (h httpHandler) respondDistance(w http.ResponseWriter, req *http.Request, name string, user *Coordinate) {
	distance, err := h.resolver.DistanceToNeighborhood(req, name, user)

	switch {
	case errors.Is(err, ErrNeighborhoodNotFound):
		h.sendError(w, err, "Unknown neighborhood", http.StatusNotFound)

		return
	case errors.Is(err, ErrNoCoordinates), errors.Is(err, ErrBadCoordinate):
		h.sendError(w, err, "Neighborhood has no usable coordinates", http.StatusUnprocessableEntity)

		return
	case err != nil:
		h.sendError(w, err, "Cannot calculate distance", 0)

		return
	}

	response := struct {
		Result distanceResult `json:"result"`
	}{
		Result: distanceResult{
			Neighborhood: NormalizeNeighborhoodName(name),
			DistanceKm:   distance,
			Message:      FormatDistanceMessage(name, &distance),
		},
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleNotFound(w http.ResponseWriter, req *http.Request) {
	h.sendError(w, nil, "Unknown endpoint", http.StatusNotFound)
}

func (h httpHandler) handleMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	h.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	h.encodeJSON(w, e)
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, req)
	})
}

// NewHTTPHandler returns an HTTP API of the resolver.
//
//   GET  /location - where is the client
//   GET  /distance?neighborhood=name[&latitude=X&longitude=Y]
//   POST /distance - same as GET but parameters are in JSON body
//   GET  /stats    - usage statistics of the geolocator
//   GET  /neighborhoods - names of known neighborhoods
func NewHTTPHandler(resolver *LocationResolver) http.Handler {
	handler := httpHandler{
		resolver: resolver,
	}
	router := chi.NewRouter()

	router.Use(jsonContentType)
	router.NotFound(handler.handleNotFound)
	router.MethodNotAllowed(handler.handleMethodNotAllowed)

	router.Get("/location", handler.handleGetLocation)
	router.Get("/distance", handler.handleGetDistance)
	router.Post("/distance", handler.handlePostDistance)
	router.Get("/stats", handler.handleGetStats)
	router.Get("/neighborhoods", handler.handleGetNeighborhoods)

	return router
}

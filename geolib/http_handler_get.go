package geolib

import (
	"net/http"
	"strconv"
)

type locationResult struct {
	Address string `json:"address"`
	Coordinate
}

func (h httpHandler) handleGetLocation(w http.ResponseWriter, req *http.Request) {
	addr, _ := ExtractClientAddress(req)

	response := struct {
		Result locationResult `json:"result"`
	}{
		Result: locationResult{
			Address:    addr,
			Coordinate: h.resolver.ResolveUserLocation(req),
		},
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleGetDistance(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	name := query.Get("neighborhood")
	if name == "" {
		h.sendError(w, nil, "Neighborhood is required", http.StatusBadRequest)

		return
	}

	rawLatitude := query.Get("latitude")
	rawLongitude := query.Get("longitude")

	if rawLatitude == "" && rawLongitude == "" {
		h.respondDistance(w, req, name, nil)

		return
	}

	if rawLatitude == "" || rawLongitude == "" {
		h.sendError(w, nil, "Both latitude and longitude are required", http.StatusBadRequest)

		return
	}

	latitude, err := strconv.ParseFloat(rawLatitude, 64)
	if err != nil {
		h.sendError(w, err, "Incorrect latitude", http.StatusBadRequest)

		return
	}

	longitude, err := strconv.ParseFloat(rawLongitude, 64)
	if err != nil {
		h.sendError(w, err, "Incorrect longitude", http.StatusBadRequest)

		return
	}

	user := &Coordinate{
		Latitude:  latitude,
		Longitude: longitude,
	}

	if !user.Valid() {
		h.sendError(w, nil, "Coordinates are out of range", http.StatusBadRequest)

		return
	}

	h.respondDistance(w, req, name, user)
}

func (h httpHandler) handleGetNeighborhoods(w http.ResponseWriter, req *http.Request) {
	names, ok := h.resolver.Neighborhoods()
	if !ok {
		h.sendError(w, nil, "Neighborhoods cannot be listed", http.StatusNotImplemented)

		return
	}

	response := struct {
		Results []string `json:"results"`
	}{
		Results: names,
	}

	if response.Results == nil {
		response.Results = []string{}
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleGetStats(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Results []*UsageStats `json:"results"`
	}{
		Results: []*UsageStats{h.resolver.UsageStats()},
	}

	h.encodeJSON(w, response)
}

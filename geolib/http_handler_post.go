package geolib

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/qri-io/jsonschema"
)

var handlePostDistanceJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "neighborhood"
        ],
        "additionalProperties": false,
        "properties": {
            "neighborhood": {
                "type": "string",
                "minLength": 1
            },
            "latitude": {
                "type": "number",
                "minimum": -90,
                "maximum": 90
            },
            "longitude": {
                "type": "number",
                "minimum": -180,
                "maximum": 180
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handlePostDistanceRequest struct {
	Neighborhood string   `json:"neighborhood"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (h httpHandler) handlePostDistance(w http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Content-Type"), "application/json") {
		h.sendError(w, nil, "Incorrect content type", http.StatusUnsupportedMediaType)

		return
	}

	bodyBytes, err := ioutil.ReadAll(req.Body)

	req.Body.Close()

	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	errs, err := handlePostDistanceJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil {
		h.sendError(w, err, "Cannot validate body", http.StatusBadRequest)

		return
	}

	if len(errs) > 0 {
		h.sendError(w, errs[0], "Invalid request body", http.StatusBadRequest)

		return
	}

	parsedRequest := &handlePostDistanceRequest{}
	if err := json.Unmarshal(bodyBytes, parsedRequest); err != nil {
		h.sendError(w, err, "Cannot parse request JSON", http.StatusBadRequest)

		return
	}

	if (parsedRequest.Latitude == nil) != (parsedRequest.Longitude == nil) {
		h.sendError(w, nil, "Both latitude and longitude are required", http.StatusBadRequest)

		return
	}

	var user *Coordinate

	if parsedRequest.Latitude != nil {
		user = &Coordinate{
			Latitude:  *parsedRequest.Latitude,
			Longitude: *parsedRequest.Longitude,
		}
	}

	h.respondDistance(w, req, parsedRequest.Neighborhood, user)
}

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/9seconds/nearby/geolib"
)

// IPAPIDefaultEndpoint is a free endpoint of ip-api.com. Address is
// appended to it as a last path segment.
const IPAPIDefaultEndpoint = "http://ip-api.com/json/"

type ipapiResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	City        string   `json:"city"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

type ipapiProvider struct {
	client   geolib.HTTPClient
	endpoint string
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	result := geolib.GeoLookupResult{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.endpoint+url.PathEscape(addr), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	jsonResponse := ipapiResponse{}

	if err := fetchJSON(i.client, req, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Status != "success" {
		return result, fmt.Errorf("failed to geolocate: status=%s, message=%s",
			jsonResponse.Status, jsonResponse.Message)
	}

	result.City = jsonResponse.City
	result.Country = jsonResponse.Country
	result.CountryCode = geolib.NormalizeAlpha2Code(jsonResponse.CountryCode)

	setCoordinates(&result, jsonResponse.Lat, jsonResponse.Lon)

	return result, nil
}

// NewIPAPI returns a geolocator which queries ip-api.com compatible
// endpoint. Empty endpoint means IPAPIDefaultEndpoint.
func NewIPAPI(client geolib.HTTPClient, endpoint string) geolib.Geolocator {
	if endpoint == "" {
		endpoint = IPAPIDefaultEndpoint
	}

	return ipapiProvider{
		client:   client,
		endpoint: strings.TrimSuffix(endpoint, "/") + "/",
	}
}

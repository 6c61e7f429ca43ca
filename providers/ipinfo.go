package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/9seconds/nearby/geolib"
)

type ipinfoResponse struct {
	Bogon   bool   `json:"bogon"`
	City    string `json:"city"`
	Country string `json:"country"`
	Loc     string `json:"loc"`
}

type ipinfoProvider struct {
	authToken string
	client    geolib.HTTPClient
}

func (i ipinfoProvider) Name() string {
	return NameIPInfo
}

func (i ipinfoProvider) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	result := geolib.GeoLookupResult{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://ipinfo.io/"+url.PathEscape(addr), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	if i.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+i.authToken)
	}

	jsonResponse := ipinfoResponse{}

	if err := fetchJSON(i.client, req, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Bogon {
		return result, fmt.Errorf("failed to geolocate: %s is bogon", addr)
	}

	result.City = jsonResponse.City
	result.CountryCode = geolib.NormalizeAlpha2Code(jsonResponse.Country)
	result.Country = geolib.CountryName(result.CountryCode)

	// loc looks like "36.7957,-76.0126"
	if chunks := strings.Split(jsonResponse.Loc, ","); len(chunks) == 2 {
		latitude, errLat := strconv.ParseFloat(strings.TrimSpace(chunks[0]), 64)
		longitude, errLon := strconv.ParseFloat(strings.TrimSpace(chunks[1]), 64)

		if errLat == nil && errLon == nil {
			setCoordinates(&result, &latitude, &longitude)
		}
	}

	return result, nil
}

func NewIPInfo(client geolib.HTTPClient, authToken string) geolib.Geolocator {
	return ipinfoProvider{
		authToken: authToken,
		client:    client,
	}
}

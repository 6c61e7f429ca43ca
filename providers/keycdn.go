package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/9seconds/nearby/geolib"
)

type keycdnResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Data        struct {
		Geo struct {
			City        string   `json:"city"`
			CountryName string   `json:"country_name"`
			CountryCode string   `json:"country_code"`
			Latitude    *float64 `json:"latitude"`
			Longitude   *float64 `json:"longitude"`
		} `json:"geo"`
	} `json:"data"`
}

type keycdnProvider struct {
	client geolib.HTTPClient
}

func (k keycdnProvider) Name() string {
	return NameKeyCDN
}

func (k keycdnProvider) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	result := geolib.GeoLookupResult{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://tools.keycdn.com/geo.json?host="+url.QueryEscape(addr), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	jsonResponse := keycdnResponse{}

	if err := fetchJSON(k.client, req, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Status != "success" {
		return result, fmt.Errorf("failed to geolocate: %s", jsonResponse.Description)
	}

	geo := jsonResponse.Data.Geo

	result.City = geo.City
	result.Country = geo.CountryName
	result.CountryCode = geolib.NormalizeAlpha2Code(geo.CountryCode)

	setCoordinates(&result, geo.Latitude, geo.Longitude)

	return result, nil
}

func NewKeyCDN(client geolib.HTTPClient) geolib.Geolocator {
	return keycdnProvider{
		client: client,
	}
}

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/9seconds/nearby/geolib"
)

type ipstackResponse struct {
	Error struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
	City        string   `json:"city"`
	CountryCode string   `json:"country_code"`
	CountryName string   `json:"country_name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type ipstackProvider struct {
	client     geolib.HTTPClient
	httpScheme string
	authToken  string
}

func (i ipstackProvider) Name() string {
	return NameIPStack
}

func (i ipstackProvider) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	result := geolib.GeoLookupResult{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.buildURL(addr), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	jsonResponse := ipstackResponse{}

	if err := fetchJSON(i.client, req, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Error.Code != 0 {
		return result, fmt.Errorf(
			"failed response: code=%d, type=%s, info=%s",
			jsonResponse.Error.Code,
			jsonResponse.Error.Type,
			jsonResponse.Error.Info)
	}

	result.City = jsonResponse.City
	result.Country = jsonResponse.CountryName
	result.CountryCode = geolib.NormalizeAlpha2Code(jsonResponse.CountryCode)

	setCoordinates(&result, jsonResponse.Latitude, jsonResponse.Longitude)

	return result, nil
}

func (i ipstackProvider) buildURL(addr string) string {
	getQuery := url.Values{}

	getQuery.Set("access_key", i.authToken)
	getQuery.Set("output", "json")
	getQuery.Set("fields", "country_code,country_name,city,latitude,longitude")
	getQuery.Set("language", "en")
	getQuery.Set("hostname", "0")
	getQuery.Set("security", "0")

	u := url.URL{
		Scheme:   i.httpScheme,
		Host:     "api.ipstack.com",
		Path:     "/" + addr,
		RawQuery: getQuery.Encode(),
	}

	return u.String()
}

func NewIPStack(client geolib.HTTPClient, authToken string, isSecure bool) (geolib.Geolocator, error) {
	scheme := "http"

	if isSecure {
		scheme = "https"
	}

	if authToken == "" {
		return nil, ErrAuthTokenIsRequired
	}

	return ipstackProvider{
		client:     client,
		authToken:  authToken,
		httpScheme: scheme,
	}, nil
}

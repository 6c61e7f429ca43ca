package providers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/9seconds/nearby/geolib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(ioutil.Discard, resp) // nolint: errcheck
	resp.Close()
}

// fetchJSON sends a request and decodes JSON response into target.
func fetchJSON(client geolib.HTTPClient, req *http.Request, target interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(target); err != nil {
		return fmt.Errorf("cannot parse a response: %w", err)
	}

	return nil
}

func setCoordinates(result *geolib.GeoLookupResult, latitude, longitude *float64) {
	if latitude == nil || longitude == nil {
		return
	}

	result.Latitude = *latitude
	result.Longitude = *longitude
	result.HasCoordinates = true
}

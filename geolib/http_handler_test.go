package geolib_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/9seconds/nearby/geolib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type httpErrorJSON struct {
	Error struct {
		Message string `json:"message"`
		Context string `json:"context"`
	} `json:"error"`
}

type httpDistanceJSON struct {
	Result struct {
		Neighborhood string  `json:"neighborhood"`
		DistanceKm   float64 `json:"distance_km"`
		Message      string  `json:"message"`
	} `json:"result"`
}

type HTTPHandlerTestSuite struct {
	suite.Suite

	geolocator *GeolocatorMock
	calculator *DistanceCalculatorMock
	finder     *NeighborhoodFinderMock
	logger     *LoggerMock
	handler    http.Handler
}

func (suite *HTTPHandlerTestSuite) SetupTest() {
	suite.geolocator = &GeolocatorMock{}
	suite.calculator = &DistanceCalculatorMock{}
	suite.finder = &NeighborhoodFinderMock{}
	suite.logger = &LoggerMock{}

	suite.geolocator.On("Name").Return("mocked")
	suite.logger.AllowAll()

	resolver := geolib.NewLocationResolver(suite.geolocator,
		suite.calculator,
		suite.finder,
		suite.logger,
		testFallback,
		time.Second)
	suite.handler = geolib.NewHTTPHandler(resolver)
}

func (suite *HTTPHandlerTestSuite) TearDownTest() {
	suite.geolocator.AssertExpectations(suite.T())
	suite.calculator.AssertExpectations(suite.T())
	suite.finder.AssertExpectations(suite.T())
}

func (suite *HTTPHandlerTestSuite) Do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()

	suite.handler.ServeHTTP(rec, req)

	suite.Equal("application/json", rec.Header().Get("Content-Type"))

	return rec
}

func (suite *HTTPHandlerTestSuite) DecodeError(rec *httptest.ResponseRecorder) httpErrorJSON {
	rv := httpErrorJSON{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &rv))

	return rv
}

func (suite *HTTPHandlerTestSuite) TestLocation() {
	suite.geolocator.On("Lookup", mock.Anything, "81.2.69.142").Return(geolib.GeoLookupResult{
		Latitude:       51.5142,
		Longitude:      -0.0931,
		HasCoordinates: true,
	}, nil).Once()

	req := httptest.NewRequest("GET", "/location", nil)

	req.Header.Set("X-Forwarded-For", "81.2.69.142")

	rec := suite.Do(req)

	suite.Equal(http.StatusOK, rec.Code)

	response := struct {
		Result struct {
			Address   string  `json:"address"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"result"`
	}{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal("81.2.69.142", response.Result.Address)
	suite.Equal(51.5142, response.Result.Latitude)
	suite.Equal(-0.0931, response.Result.Longitude)
}

func (suite *HTTPHandlerTestSuite) TestGetDistance() {
	suite.finder.On("FindNeighborhoodInfo", "النرجس").
		Return(geolib.NeighborhoodRecord{"lat": 24.7, "lon": 46.7}, true).
		Once()
	suite.calculator.On("CalculateDistance", 24.0, 46.0, 24.7, 46.7).
		Return(12.345).
		Once()

	rec := suite.Do(httptest.NewRequest("GET",
		"/distance?neighborhood=%D8%A7%D9%84%D9%86%D8%B1%D8%AC%D8%B3&latitude=24&longitude=46", nil))

	suite.Equal(http.StatusOK, rec.Code)

	response := httpDistanceJSON{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal("حي النرجس", response.Result.Neighborhood)
	suite.Equal(12.345, response.Result.DistanceKm)
	suite.Contains(response.Result.Message, "12.35")
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceFallback() {
	suite.finder.On("FindNeighborhoodInfo", "test").
		Return(geolib.NeighborhoodRecord{"lat": 24.7, "lon": 46.7}, true).
		Once()
	suite.calculator.On("CalculateDistance", testFallback.Latitude, testFallback.Longitude, 24.7, 46.7).
		Return(3.0).
		Once()

	req := httptest.NewRequest("GET", "/distance?neighborhood=test", nil)

	req.Header.Set("X-Real-IP", "192.168.0.1")

	suite.Equal(http.StatusOK, suite.Do(req).Code)
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceBadParameters() {
	urls := []string{
		"/distance",
		"/distance?neighborhood=test&latitude=24",
		"/distance?neighborhood=test&latitude=north&longitude=46",
		"/distance?neighborhood=test&latitude=24&longitude=east",
	}

	for _, url := range urls {
		rec := suite.Do(httptest.NewRequest("GET", url, nil))

		suite.Equal(http.StatusBadRequest, rec.Code, url)
		suite.NotEmpty(suite.DecodeError(rec).Error.Message)
	}
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceOutOfRange() {
	urls := []string{
		"/distance?neighborhood=test&latitude=NaN&longitude=0",
		"/distance?neighborhood=test&latitude=0&longitude=NaN",
		"/distance?neighborhood=test&latitude=Inf&longitude=0",
		"/distance?neighborhood=test&latitude=0&longitude=-Inf",
		"/distance?neighborhood=test&latitude=500&longitude=46",
		"/distance?neighborhood=test&latitude=-90.5&longitude=46",
		"/distance?neighborhood=test&latitude=24&longitude=180.1",
	}

	for _, url := range urls {
		rec := suite.Do(httptest.NewRequest("GET", url, nil))

		suite.Equal(http.StatusBadRequest, rec.Code, url)
		suite.Equal("Coordinates are out of range", suite.DecodeError(rec).Error.Message, url)
	}
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceBoundaries() {
	suite.finder.On("FindNeighborhoodInfo", "test").
		Return(geolib.NeighborhoodRecord{"lat": 24.7, "lon": 46.7}, true).
		Once()
	suite.calculator.On("CalculateDistance", -90.0, 180.0, 24.7, 46.7).
		Return(1.0).
		Once()

	rec := suite.Do(httptest.NewRequest("GET", "/distance?neighborhood=test&latitude=-90&longitude=180", nil))

	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceNonFiniteNeighborhood() {
	for _, value := range []string{"nan", "NaN", "inf", "-Inf"} {
		suite.finder.On("FindNeighborhoodInfo", "test").
			Return(geolib.NeighborhoodRecord{"lat": value, "lon": "46.7"}, true).
			Once()

		rec := suite.Do(httptest.NewRequest("GET", "/distance?neighborhood=test&latitude=24&longitude=46", nil))

		suite.Equal(http.StatusUnprocessableEntity, rec.Code, value)
		suite.NotEmpty(suite.DecodeError(rec).Error.Message, value)
	}
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceNonFiniteResult() {
	suite.finder.On("FindNeighborhoodInfo", "test").
		Return(geolib.NeighborhoodRecord{"lat": 24.7, "lon": 46.7}, true).
		Once()
	suite.calculator.On("CalculateDistance", 24.0, 46.0, 24.7, 46.7).
		Return(math.NaN()).
		Once()

	rec := suite.Do(httptest.NewRequest("GET", "/distance?neighborhood=test&latitude=24&longitude=46", nil))

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.Contains(suite.DecodeError(rec).Error.Context, geolib.ErrBadDistance.Error())
}

func (suite *HTTPHandlerTestSuite) TestNeighborhoodsNotSupported() {
	rec := suite.Do(httptest.NewRequest("GET", "/neighborhoods", nil))

	suite.Equal(http.StatusNotImplemented, rec.Code)
}

func (suite *HTTPHandlerTestSuite) TestNeighborhoods() {
	lister := &NeighborhoodListerMock{}

	lister.On("Names").Return([]string{"النرجس", "حي الملقا"}).Once()

	suite.handler = geolib.NewHTTPHandler(geolib.NewLocationResolver(suite.geolocator,
		suite.calculator,
		lister,
		suite.logger,
		testFallback,
		time.Second))

	rec := suite.Do(httptest.NewRequest("GET", "/neighborhoods", nil))

	suite.Equal(http.StatusOK, rec.Code)

	response := struct {
		Results []string `json:"results"`
	}{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal([]string{"النرجس", "حي الملقا"}, response.Results)
	lister.AssertExpectations(suite.T())
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceUnknown() {
	suite.finder.On("FindNeighborhoodInfo", "unknown").Return(nil, false).Once()

	rec := suite.Do(httptest.NewRequest("GET", "/distance?neighborhood=unknown&latitude=1&longitude=2", nil))

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal(geolib.ErrNeighborhoodNotFound.Error(), suite.DecodeError(rec).Error.Context)
}

func (suite *HTTPHandlerTestSuite) TestGetDistanceNoCoordinates() {
	suite.finder.On("FindNeighborhoodInfo", "test").
		Return(geolib.NeighborhoodRecord{"name": "test"}, true).
		Once()

	rec := suite.Do(httptest.NewRequest("GET", "/distance?neighborhood=test&latitude=1&longitude=2", nil))

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (suite *HTTPHandlerTestSuite) TestPostDistance() {
	suite.finder.On("FindNeighborhoodInfo", "الملقا").
		Return(geolib.NeighborhoodRecord{"latitude": "24.80", "longitude": "46.61"}, true).
		Once()
	suite.calculator.On("CalculateDistance", 24.5, 46.5, 24.80, 46.61).
		Return(35.0).
		Once()

	req := httptest.NewRequest("POST", "/distance",
		strings.NewReader(`{"neighborhood": "الملقا", "latitude": 24.5, "longitude": 46.5}`))

	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rec := suite.Do(req)

	suite.Equal(http.StatusOK, rec.Code)

	response := httpDistanceJSON{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal(35.0, response.Result.DistanceKm)
}

func (suite *HTTPHandlerTestSuite) TestPostDistanceIncorrectContentType() {
	req := httptest.NewRequest("POST", "/distance", strings.NewReader(`{"neighborhood": "x"}`))

	req.Header.Set("Content-Type", "text/plain")

	suite.Equal(http.StatusUnsupportedMediaType, suite.Do(req).Code)
}

func (suite *HTTPHandlerTestSuite) TestPostDistanceInvalidBody() {
	bodies := []string{
		`{[`,
		`{}`,
		`{"neighborhood": ""}`,
		`{"neighborhood": "x", "latitude": 100, "longitude": 1}`,
		`{"neighborhood": "x", "latitude": 10}`,
		`{"neighborhood": "x", "extra": true}`,
	}

	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/distance", strings.NewReader(body))

		req.Header.Set("Content-Type", "application/json")

		suite.Equal(http.StatusBadRequest, suite.Do(req).Code, body)
	}
}

func (suite *HTTPHandlerTestSuite) TestStats() {
	suite.geolocator.On("Lookup", mock.Anything, "81.2.69.142").
		Return(geolib.GeoLookupResult{}, errors.New("fail")).
		Once()

	req := httptest.NewRequest("GET", "/location", nil)

	req.Header.Set("X-Forwarded-For", "81.2.69.142")
	suite.Do(req)

	rec := suite.Do(httptest.NewRequest("GET", "/stats", nil))

	suite.Equal(http.StatusOK, rec.Code)

	response := struct {
		Results []usageStatsJSON `json:"results"`
	}{}

	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Len(response.Results, 1)
	suite.Equal("mocked", response.Results[0].Name)
	suite.EqualValues(1, response.Results[0].FailureCount)
	suite.EqualValues(1, response.Results[0].FallbackCount)
}

func (suite *HTTPHandlerTestSuite) TestNotFound() {
	suite.Equal(http.StatusNotFound, suite.Do(httptest.NewRequest("GET", "/unknown", nil)).Code)
}

func (suite *HTTPHandlerTestSuite) TestMethodNotAllowed() {
	rec := suite.Do(httptest.NewRequest("DELETE", "/distance", nil))

	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPHandler(t *testing.T) {
	suite.Run(t, &HTTPHandlerTestSuite{})
}

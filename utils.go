package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/9seconds/nearby/geolib"
	"github.com/9seconds/nearby/providers"
	"github.com/spf13/afero"
)

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

// makeGeolocator returns a configured geolocator and a closer for the
// resources it holds.
func makeGeolocator(conf configGeolocator) (geolib.Geolocator, io.Closer, error) {
	var (
		geolocator geolib.Geolocator
		closer     io.Closer = nopCloser{}
	)

	params := conf.GetSpecificParameters()

	switch conf.GetName() {
	case providers.NameIPAPI:
		geolocator = providers.NewIPAPI(makeNewHTTPClient(conf), conf.GetEndpoint())
	case providers.NameIPInfo:
		geolocator = providers.NewIPInfo(makeNewHTTPClient(conf), params["auth_token"])
	case providers.NameIPStack:
		prov, err := providers.NewIPStack(makeNewHTTPClient(conf),
			params["auth_token"], boolParam(params["secure"]))
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create ipstack geolocator: %w", err)
		}

		geolocator = prov
	case providers.NameKeyCDN:
		geolocator = providers.NewKeyCDN(makeNewHTTPClient(conf))
	case providers.NameMaxmind:
		dbPath := params["database_path"]
		fs := afero.NewBasePathFs(afero.NewOsFs(), filepath.Dir(dbPath)).(*afero.BasePathFs)

		prov, err := providers.NewMaxmind(fs, filepath.Base(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create maxmind geolocator: %w", err)
		}

		geolocator = prov
		closer = prov
	default:
		return nil, nil, fmt.Errorf("unsupported geolocator name: %s", conf.GetName())
	}

	if size := conf.GetCacheSize(); size > 0 {
		geolocator = geolib.NewCachingGeolocator(geolocator, size, conf.GetCacheTTL())
	}

	return geolocator, closer, nil
}

func makeNewHTTPClient(conf configGeolocator) geolib.HTTPClient {
	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
	}

	return geolib.NewHTTPClient(httpClient,
		"nearby/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst(),
		conf.GetCircuitBreakerOpenThreshold(),
		conf.GetCircuitBreakerHalfOpenTimeout(),
		conf.GetCircuitBreakerResetFailuresTimeout())
}

func makeHandler(resolver *geolib.LocationResolver, conf *config) http.Handler {
	handler := geolib.NewHTTPHandler(resolver)

	if user, password, ok := conf.GetBasicAuth(); ok {
		handler = &basicAuthMiddleware{
			handler:  handler,
			user:     []byte(user),
			password: []byte(password),
		}
	}

	return handler
}

func boolParam(param string) bool {
	switch strings.ToLower(param) {
	case "1", "true", "enabled", "yes":
		return true
	default:
		return false
	}
}

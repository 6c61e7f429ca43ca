package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/9seconds/nearby/geolib"
	"github.com/9seconds/nearby/neighborhoods"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

var (
	app = kingpin.New(
		"nearby",
		"Distance from a visitor to a neighborhood")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("NEARBY_DEBUG").
		Bool()
	configPath = app.Arg("config-path", "Path to the config.").
			Required().
			ExistingFile()
)

func main() {
	app.Version(version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	conf, err := parseConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot parse config")
	}

	store, err := neighborhoods.Load(afero.NewOsFs(), conf.GetNeighborhoodsPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load neighborhoods")
	}

	geolocator, closer, err := makeGeolocator(conf.GetGeolocator())
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create geolocator")
	}

	defer closer.Close()

	latitude, longitude := conf.GetFallback()
	resolver := geolib.NewLocationResolver(geolocator,
		geolib.Haversine,
		store,
		newLogger(os.Stderr, *debug),
		geolib.Coordinate{Latitude: latitude, Longitude: longitude},
		conf.GetGeolocator().GetLookupTimeout())

	ctx, cancel := makeRootContext()
	defer cancel()

	server := &http.Server{
		Addr:    conf.GetListen(),
		Handler: makeHandler(resolver, conf),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		server.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.Info().
		Str("listen", conf.GetListen()).
		Str("geolocator", geolocator.Name()).
		Int("neighborhoods", len(store.Names())).
		Msg("Start server")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server has crashed")
	}
}

package providers

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/9seconds/nearby/geolib"
	"github.com/oschwald/maxminddb-golang"
	"github.com/spf13/afero"
)

type maxmindLookupResult struct {
	City struct {
		Names struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"city"`
	Country struct {
		IsoCode string `maxminddb:"iso_code"`
		Names   struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  *float64 `maxminddb:"latitude"`
		Longitude *float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

// MaxmindGeolocator reads a local GeoLite2 City (or compatible)
// database. It does not download or update it, this is up to the
// operator.
type MaxmindGeolocator struct {
	dbReader *maxminddb.Reader
}

func (m *MaxmindGeolocator) Name() string {
	return NameMaxmind
}

func (m *MaxmindGeolocator) Lookup(ctx context.Context, addr string) (geolib.GeoLookupResult, error) {
	rv := geolib.GeoLookupResult{}

	ip := net.ParseIP(addr)
	if ip == nil {
		return rv, fmt.Errorf("%w: %s", ErrIncorrectAddress, addr)
	}

	record := maxmindLookupResult{}

	if err := m.dbReader.Lookup(ip, &record); err != nil {
		return rv, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	rv.City = record.City.Names.En
	rv.Country = record.Country.Names.En
	rv.CountryCode = geolib.NormalizeAlpha2Code(strings.ToUpper(record.Country.IsoCode))

	setCoordinates(&rv, record.Location.Latitude, record.Location.Longitude)

	return rv, nil
}

func (m *MaxmindGeolocator) Close() error {
	return m.dbReader.Close()
}

// NewMaxmind opens a database file fileName which is placed within a
// given filesystem.
func NewMaxmind(fs *afero.BasePathFs, fileName string) (*MaxmindGeolocator, error) {
	if fileName == "" {
		return nil, ErrDatabasePathIsRequired
	}

	filepath, err := fs.RealPath(fileName)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve a file name of the database: %w", err)
	}

	reader, err := maxminddb.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize a reader of maxminddb: %w", err)
	}

	return &MaxmindGeolocator{
		dbReader: reader,
	}, nil
}

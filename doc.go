// Nearby is a small service which tells a visitor how far they are
// from a neighborhood of the city.
//
// A location of the visitor is guessed by IP address with a help of
// some geolocation service. If this is not possible (private address,
// service is down, no coordinates), a fallback location is used, this
// is a center of the city.
//
// The tool is organized into 3 logical parts:
//
// Geolib
//
// geolib is a main package of the application. It contains
// LocationResolver which glues together a geolocator, a distance
// calculator and a neighborhood finder. It also has its own API and
// can act as http.Handler.
//
// Providers
//
// This package has a set of geolocator implementations: ip-api.com,
// ipinfo.io, ipstack.com, tools.keycdn.com and an offline MaxMind
// database.
//
// Neighborhoods
//
// A CSV-backed store of neighborhoods with tolerant name matching.
//
// A main package itself wires all of them together. Resulting binary
// starts http server and you can use it as is.
package main

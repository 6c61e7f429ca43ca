// This package provides a set of structs and functions which are used
// to locate a client by its network address and measure how far it is
// from a named neighborhood.
//
// geolib is core of the nearby project. You can treat the rest of the
// application as an _example_ on how to use this library: how to pass
// parameters from HTTP requests, how to generate responses, how to
// implement geolocators.
//
// LocationResolver is a main entity of the geolib. It extracts a client
// address from request headers, asks a Geolocator where this address
// is, falls back to a fixed coordinate if anything goes wrong, and
// delegates distance math and neighborhood lookups to injected
// collaborators.
package geolib

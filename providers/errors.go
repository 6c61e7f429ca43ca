package providers

import "errors"

var (
	// ErrAuthTokenIsRequired is returned if you are trying to initialize
	// a geolocator which requires some token to work.
	ErrAuthTokenIsRequired = errors.New("auth token is required")

	// ErrDatabasePathIsRequired is returned if offline geolocator is
	// initialized without a path to the database.
	ErrDatabasePathIsRequired = errors.New("database path is required")

	// ErrIncorrectAddress is returned if geolocator accepts only IP
	// addresses and got something else.
	ErrIncorrectAddress = errors.New("incorrect ip address")
)

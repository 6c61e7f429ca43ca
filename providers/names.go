package providers

const (
	// Identifier for ip-api.com.
	NameIPAPI = "ipapi"

	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"

	// Identifier for ipstack.com
	NameIPStack = "ipstack"

	// Identifier for tools.keycdn.com.
	NameKeyCDN = "keycdn"

	// Identifier for local MaxMind GeoLite2 City database.
	NameMaxmind = "maxmind"
)

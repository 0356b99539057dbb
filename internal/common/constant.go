package common

const (
	// AuthorizationHeaderName carries the bearer token on requests and
	// carries the freshly issued token on signup/login responses.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is the scheme prefix of the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName echoes the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)

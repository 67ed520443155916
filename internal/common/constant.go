package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// APIKeyHeaderName carries the fixed application key expected by the
	// backend on every request.
	APIKeyHeaderName = "x-api-key"

	// RequestIDHeaderName carries a client-generated id for request tracing.
	RequestIDHeaderName = "X-Request-Id"
)
